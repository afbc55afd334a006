// Package docs serves the OpenAPI document for the JSON API. Kept by hand
// and updated alongside the handlers in server_api.go.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "schemes": {{ marshal .Schemes }},
  "swagger": "2.0",
  "info": {
    "description": "{{escape .Description}}",
    "title": "{{.Title}}",
    "version": "{{.Version}}"
  },
  "host": "{{.Host}}",
  "basePath": "{{.BasePath}}",
  "paths": {
    "/api/v1/courses": {
      "get": {
        "produces": ["application/json"],
        "tags": ["catalog"],
        "summary": "List courses",
        "description": "Returns the course catalog priced for the caller's effective location.",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpserver.CourseListResponse"}},
          "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}}
        }
      }
    },
    "/api/v1/courses/{course_id}": {
      "get": {
        "produces": ["application/json"],
        "tags": ["catalog"],
        "summary": "Get one course",
        "parameters": [
          {"type": "string", "name": "course_id", "in": "path", "required": true, "description": "Course id"}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpserver.CourseResponse"}},
          "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}}
        }
      }
    },
    "/api/v1/packages": {
      "get": {
        "produces": ["application/json"],
        "tags": ["catalog"],
        "summary": "List packages",
        "description": "Returns the package catalog priced for the caller's effective location.",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpserver.PackageListResponse"}},
          "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}}
        }
      }
    },
    "/api/v1/packages/{package_id}": {
      "get": {
        "produces": ["application/json"],
        "tags": ["catalog"],
        "summary": "Get one package",
        "parameters": [
          {"type": "string", "name": "package_id", "in": "path", "required": true, "description": "Package id"}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpserver.PackageResponse"}},
          "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}}
        }
      }
    },
    "/api/v1/countries": {
      "get": {
        "produces": ["application/json"],
        "tags": ["location"],
        "summary": "List countries",
        "description": "Returns the country catalog with the caller's current selection marked.",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ListCountriesResponse"}}
        }
      }
    },
    "/api/v1/location": {
      "post": {
        "consumes": ["application/json"],
        "produces": ["application/json"],
        "tags": ["location"],
        "summary": "Select a pricing country",
        "description": "Persists the caller's country selection for subsequent catalog calls.",
        "parameters": [
          {"name": "request", "in": "body", "required": true, "description": "Country selection", "schema": {"$ref": "#/definitions/http.SelectLocationRequest"}}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SelectLocationResponse"}},
          "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
        }
      }
    },
    "/api/v1/session": {
      "get": {
        "produces": ["application/json"],
        "tags": ["session"],
        "summary": "Inspect session state",
        "description": "Reports the caller's session state without triggering a restore.",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpserver.SessionResponse"}}
        }
      }
    }
  },
  "definitions": {
    "httpserver.CourseListResponse": {
      "type": "object",
      "properties": {
        "status": {"type": "string"},
        "data": {"type": "array", "items": {"$ref": "#/definitions/webui.CourseCard"}}
      }
    },
    "httpserver.CourseResponse": {
      "type": "object",
      "properties": {
        "status": {"type": "string"},
        "data": {"$ref": "#/definitions/webui.CourseCard"}
      }
    },
    "httpserver.PackageListResponse": {
      "type": "object",
      "properties": {
        "status": {"type": "string"},
        "data": {"type": "array", "items": {"$ref": "#/definitions/webui.PackageCard"}}
      }
    },
    "httpserver.PackageResponse": {
      "type": "object",
      "properties": {
        "status": {"type": "string"},
        "data": {"$ref": "#/definitions/webui.PackageCard"}
      }
    },
    "httpserver.SessionResponse": {
      "type": "object",
      "properties": {
        "status": {"type": "string"},
        "data": {"$ref": "#/definitions/httpserver.SessionInfo"}
      }
    },
    "httpserver.SessionInfo": {
      "type": "object",
      "properties": {
        "state": {"type": "string"},
        "userId": {"type": "string"},
        "userName": {"type": "string"}
      }
    },
    "httpserver.ErrorResponse": {
      "type": "object",
      "properties": {
        "code": {"type": "string"},
        "message": {"type": "string"}
      }
    },
    "http.ListCountriesResponse": {
      "type": "object",
      "properties": {
        "status": {"type": "string"},
        "data": {"type": "array", "items": {"$ref": "#/definitions/http.CountryDTO"}}
      }
    },
    "http.SelectLocationRequest": {
      "type": "object",
      "properties": {
        "country_code": {"type": "string"}
      }
    },
    "http.SelectLocationResponse": {
      "type": "object",
      "properties": {
        "status": {"type": "string"},
        "data": {"$ref": "#/definitions/http.CountryDTO"}
      }
    },
    "http.ErrorResponse": {
      "type": "object",
      "properties": {
        "code": {"type": "string"},
        "message": {"type": "string"}
      }
    },
    "http.CountryDTO": {
      "type": "object",
      "properties": {
        "code": {"type": "string"},
        "name": {"type": "string"},
        "currency": {"type": "string"},
        "selected": {"type": "boolean"}
      }
    },
    "webui.CourseCard": {
      "type": "object",
      "properties": {
        "CourseID": {"type": "string"},
        "Title": {"type": "string"},
        "Description": {"type": "string"},
        "CreatorName": {"type": "string"},
        "Image": {"type": "string"},
        "Price": {"$ref": "#/definitions/webui.PriceView"},
        "Restricted": {"type": "boolean"},
        "RestrictionMessage": {"type": "string"},
        "Owned": {"type": "boolean"}
      }
    },
    "webui.PackageCard": {
      "type": "object",
      "properties": {
        "PackageID": {"type": "string"},
        "Title": {"type": "string"},
        "CreatorName": {"type": "string"},
        "Image": {"type": "string"},
        "CourseCount": {"type": "integer"},
        "Courses": {"type": "array", "items": {"$ref": "#/definitions/webui.CourseCard"}},
        "Price": {"$ref": "#/definitions/webui.PriceView"},
        "Restricted": {"type": "boolean"},
        "RestrictionMessage": {"type": "string"},
        "Owned": {"type": "boolean"}
      }
    },
    "webui.PriceView": {
      "type": "object",
      "properties": {
        "Label": {"type": "string"},
        "MultiplierNote": {"type": "string"}
      }
    }
  }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Courseify Web API",
	Description:      "Read-only JSON surface of the storefront: catalog, countries, and session state.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
