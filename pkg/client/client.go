// Package client is a Go client for the academy HTTP API, used by admin
// tooling and the API tests.
//
//	c := client.NewClient("http://localhost:8080")
//	if _, err := c.SignIn(ctx, "admin@example.com", "secret"); err != nil {
//		return err
//	}
//	course, err := c.CreateCourse(ctx, models.Course{Title: "Logic 201"})
//
// The client keeps the visitor cookie between calls, so announcement
// dismissal and quiz progress behave as they do in a browser. A Client is
// safe for concurrent use once the token is set.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/colorbulb/nexteliteweb2/pkg/academy"
	"github.com/colorbulb/nexteliteweb2/pkg/auth"
	"github.com/colorbulb/nexteliteweb2/pkg/content"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
	"github.com/colorbulb/nexteliteweb2/pkg/routes"
)

// APIError is returned for every response with status 400 or above.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: status=%d, message=%s", e.StatusCode, e.Message)
}

// StatusCode returns the HTTP status of an *APIError in err's chain, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
}

// NewClient creates a client for baseURL (e.g. "http://localhost:8080",
// without a trailing slash).
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
}

func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	return c.httpClient.Do(req)
}

func decodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var body struct {
			Error  string `json:"error"`
			Status string `json:"status"`
		}
		raw, _ := io.ReadAll(resp.Body)
		msg := string(raw)
		if json.Unmarshal(raw, &body) == nil {
			if body.Error != "" {
				msg = body.Error
			} else if body.Status != "" {
				msg = body.Status
			}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if target != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// call performs a request and decodes the response into target.
func (c *Client) call(ctx context.Context, method, path string, body, target any) error {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return decodeResponse(resp, target)
}

func get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	err := c.call(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	return get[map[string]any](ctx, c, "/api/health")
}

func (c *Client) Site(ctx context.Context) (academy.Site, error) {
	return get[academy.Site](ctx, c, "/api/site")
}

func (c *Client) Courses(ctx context.Context) ([]models.Course, error) {
	return get[[]models.Course](ctx, c, "/api/courses")
}

func (c *Client) FeaturedCourses(ctx context.Context) ([]models.Course, error) {
	return get[[]models.Course](ctx, c, "/api/courses?featured=true")
}

func (c *Client) Course(ctx context.Context, id string) (models.Course, error) {
	return get[models.Course](ctx, c, "/api/courses/"+url.PathEscape(id))
}

func (c *Client) Posts(ctx context.Context) ([]models.BlogPost, error) {
	return get[[]models.BlogPost](ctx, c, "/api/posts")
}

func (c *Client) Post(ctx context.Context, id string) (models.BlogPost, error) {
	return get[models.BlogPost](ctx, c, "/api/posts/"+url.PathEscape(id))
}

func (c *Client) Team(ctx context.Context) ([]models.TeamMember, error) {
	return get[[]models.TeamMember](ctx, c, "/api/team")
}

func (c *Client) Testimonials(ctx context.Context) ([]models.Testimonial, error) {
	return get[[]models.Testimonial](ctx, c, "/api/testimonials")
}

func (c *Client) SocialFeed(ctx context.Context) ([]models.SocialFeedItem, error) {
	return get[[]models.SocialFeedItem](ctx, c, "/api/social")
}

func (c *Client) Settings(ctx context.Context) (models.Settings, error) {
	return get[models.Settings](ctx, c, "/api/settings")
}

func (c *Client) Page(ctx context.Context, page string) (map[string]string, error) {
	return get[map[string]string](ctx, c, "/api/pages/"+url.PathEscape(page))
}

// Announcement returns the announcement to show, or nil.
func (c *Client) Announcement(ctx context.Context) (*models.Announcement, error) {
	resp, err := get[academy.AnnouncementResponse](ctx, c, "/api/announcement")
	return resp.Announcement, err
}

func (c *Client) DismissAnnouncement(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodPost, "/api/announcement/"+url.PathEscape(id)+"/dismiss", nil, nil)
}

func (c *Client) SubmitLead(ctx context.Context, lead models.Lead) (models.Lead, error) {
	var out models.Lead
	err := c.call(ctx, http.MethodPost, "/api/leads", lead, &out)
	return out, err
}

func (c *Client) Quiz(ctx context.Context, courseID string) (academy.QuizView, error) {
	return get[academy.QuizView](ctx, c, "/api/courses/"+url.PathEscape(courseID)+"/quiz")
}

func (c *Client) quizAction(ctx context.Context, courseID, action string, body any) (academy.QuizView, error) {
	var out academy.QuizView
	err := c.call(ctx, http.MethodPost, "/api/courses/"+url.PathEscape(courseID)+"/quiz/"+action, body, &out)
	return out, err
}

func (c *Client) QuizSelect(ctx context.Context, courseID string, option int) (academy.QuizView, error) {
	return c.quizAction(ctx, courseID, "select", academy.QuizAction{Option: option})
}

func (c *Client) QuizCheck(ctx context.Context, courseID string) (academy.QuizView, error) {
	return c.quizAction(ctx, courseID, "check", nil)
}

func (c *Client) QuizNext(ctx context.Context, courseID string) (academy.QuizView, error) {
	return c.quizAction(ctx, courseID, "next", nil)
}

func (c *Client) QuizRestart(ctx context.Context, courseID string) (academy.QuizView, error) {
	return c.quizAction(ctx, courseID, "restart", nil)
}

func (c *Client) Resolve(ctx context.Context, path string) (routes.Route, error) {
	return get[routes.Route](ctx, c, "/api/resolve?path="+url.QueryEscape(path))
}

// SignIn authenticates and keeps the token for later calls.
func (c *Client) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	var out auth.Session
	if err := c.call(ctx, http.MethodPost, "/api/auth/signin", academy.SignInRequest{Email: email, Password: password}, &out); err != nil {
		return out, err
	}
	c.SetAuthToken(out.Token)
	return out, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	if err := c.call(ctx, http.MethodPost, "/api/auth/signout", nil, nil); err != nil {
		return err
	}
	c.SetAuthToken("")
	return nil
}

func (c *Client) Me(ctx context.Context) (auth.User, error) {
	return get[auth.User](ctx, c, "/api/auth/me")
}

// Export downloads the admin snapshot as JSON.
func (c *Client) Export(ctx context.Context) (content.Export, error) {
	return get[content.Export](ctx, c, "/api/admin/export")
}
