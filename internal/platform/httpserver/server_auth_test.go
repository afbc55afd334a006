package httpserver

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func login(t *testing.T, client *http.Client, base, email, password string) {
	t.Helper()
	postForm(t, client, base+"/login", url.Values{
		"email":    {email},
		"password": {password},
	})
}

func TestLoginGrantsDashboardAccess(t *testing.T) {
	ts := newTestServer(t)
	client := newBrowser(t)

	login(t, client, ts.URL, "asha@example.com", "password123")

	status, body := fetch(t, client, ts.URL+"/dashboard/my-courses")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, "My Courses") {
		t.Fatal("dashboard not rendered after login")
	}
	if !strings.Contains(body, "Asha Verma") {
		t.Fatal("logged-in user name missing from chrome")
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	ts := newTestServer(t)
	client := newBrowser(t)

	resp, err := client.PostForm(ts.URL+"/login", url.Values{
		"email":    {"asha@example.com"},
		"password": {"wrong"},
	})
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	body := readAll(t, resp)
	if !strings.Contains(body, "Incorrect email or password") {
		t.Fatal("upstream auth message not shown on the form")
	}
	if !strings.Contains(body, `value="asha@example.com"`) {
		t.Fatal("email field not preserved on redisplay")
	}
}

func TestLoginRedirectStaysOnSite(t *testing.T) {
	ts := newTestServer(t)
	client := newBrowser(t)
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := client.PostForm(ts.URL+"/login", url.Values{
		"email":    {"asha@example.com"},
		"password": {"password123"},
		"redirect": {"//evil.example/phish"},
	})
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Location"); got != "/courses" {
		t.Fatalf("redirect = %q, want /courses", got)
	}
}

func TestLogoutDropsAuthentication(t *testing.T) {
	ts := newTestServer(t)
	client := newBrowser(t)

	login(t, client, ts.URL, "asha@example.com", "password123")
	postForm(t, client, ts.URL+"/logout", url.Values{})

	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err := client.Get(ts.URL + "/dashboard/my-courses")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect to login", resp.StatusCode)
	}
}

func TestRegisterValidationRedisplaysForm(t *testing.T) {
	ts := newTestServer(t)
	client := newBrowser(t)

	resp, err := client.PostForm(ts.URL+"/register", url.Values{
		"name":     {"New Person"},
		"email":    {"asha@example.com"},
		"phone":    {"5550001111"},
		"password": {"password123"},
	})
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	body := readAll(t, resp)
	if !strings.Contains(body, "Email already in use") {
		t.Fatal("duplicate-email field error not shown")
	}
	if !strings.Contains(body, `value="New Person"`) {
		t.Fatal("name field not preserved on redisplay")
	}
}

func TestRegisterCreatesAuthenticatedSession(t *testing.T) {
	ts := newTestServer(t)
	client := newBrowser(t)

	postForm(t, client, ts.URL+"/register", url.Values{
		"name":     {"Dana Cole"},
		"email":    {"dana@example.com"},
		"phone":    {"5552223333"},
		"password": {"longenough"},
	})

	status, body := fetch(t, client, ts.URL+"/dashboard/my-courses")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, "Dana Cole") {
		t.Fatal("new account not logged in")
	}
}
