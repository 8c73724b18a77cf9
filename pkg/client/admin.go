package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/colorbulb/nexteliteweb2/pkg/academy"
	"github.com/colorbulb/nexteliteweb2/pkg/content"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

// Admin calls need a token from SignIn.

func (c *Client) AllCourses(ctx context.Context) ([]models.Course, error) {
	return get[[]models.Course](ctx, c, "/api/admin/courses")
}

func (c *Client) CreateCourse(ctx context.Context, course models.Course) (models.Course, error) {
	var out models.Course
	err := c.call(ctx, http.MethodPost, "/api/admin/courses", course, &out)
	return out, err
}

func (c *Client) UpdateCourse(ctx context.Context, course models.Course) (models.Course, error) {
	var out models.Course
	err := c.call(ctx, http.MethodPut, "/api/admin/courses/"+url.PathEscape(course.ID), course, &out)
	return out, err
}

func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/admin/courses/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreatePost(ctx context.Context, post models.BlogPost) (models.BlogPost, error) {
	var out models.BlogPost
	err := c.call(ctx, http.MethodPost, "/api/admin/posts", post, &out)
	return out, err
}

func (c *Client) UpdatePost(ctx context.Context, post models.BlogPost) (models.BlogPost, error) {
	var out models.BlogPost
	err := c.call(ctx, http.MethodPut, "/api/admin/posts/"+url.PathEscape(post.ID), post, &out)
	return out, err
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/admin/posts/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Announcements(ctx context.Context) ([]models.Announcement, error) {
	return get[[]models.Announcement](ctx, c, "/api/admin/announcements")
}

func (c *Client) CreateAnnouncement(ctx context.Context, ann models.Announcement) (models.Announcement, error) {
	var out models.Announcement
	err := c.call(ctx, http.MethodPost, "/api/admin/announcements", ann, &out)
	return out, err
}

func (c *Client) UpdateAnnouncement(ctx context.Context, ann models.Announcement) (models.Announcement, error) {
	var out models.Announcement
	err := c.call(ctx, http.MethodPut, "/api/admin/announcements/"+url.PathEscape(ann.ID), ann, &out)
	return out, err
}

func (c *Client) DeleteAnnouncement(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/admin/announcements/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ReplaceTeam(ctx context.Context, team []models.TeamMember) ([]models.TeamMember, error) {
	var out []models.TeamMember
	err := c.call(ctx, http.MethodPut, "/api/admin/team", team, &out)
	return out, err
}

func (c *Client) ReplaceTestimonials(ctx context.Context, testimonials []models.Testimonial) ([]models.Testimonial, error) {
	var out []models.Testimonial
	err := c.call(ctx, http.MethodPut, "/api/admin/testimonials", testimonials, &out)
	return out, err
}

func (c *Client) ReplaceSocialFeed(ctx context.Context, feed []models.SocialFeedItem) ([]models.SocialFeedItem, error) {
	var out []models.SocialFeedItem
	err := c.call(ctx, http.MethodPut, "/api/admin/social", feed, &out)
	return out, err
}

func (c *Client) SyncSocial(ctx context.Context) (models.SocialFeedItem, error) {
	var out models.SocialFeedItem
	err := c.call(ctx, http.MethodPost, "/api/admin/social/sync", nil, &out)
	return out, err
}

func (c *Client) UpdateSettings(ctx context.Context, settings models.Settings) error {
	return c.call(ctx, http.MethodPut, "/api/admin/settings", settings, nil)
}

func (c *Client) UpdatePageContent(ctx context.Context, pc models.PageContent) error {
	return c.call(ctx, http.MethodPut, "/api/admin/pageContent", pc, nil)
}

func (c *Client) PageSchema(ctx context.Context) ([]content.PageField, error) {
	return get[[]content.PageField](ctx, c, "/api/admin/pages/schema")
}

func (c *Client) SetPageField(ctx context.Context, page, field, value string) (content.PageField, error) {
	var out content.PageField
	path := "/api/admin/pages/" + url.PathEscape(page) + "/" + url.PathEscape(field)
	err := c.call(ctx, http.MethodPut, path, academy.PageFieldRequest{Value: value}, &out)
	return out, err
}

func (c *Client) Leads(ctx context.Context) ([]models.Lead, error) {
	return get[[]models.Lead](ctx, c, "/api/admin/leads")
}

func (c *Client) ListItems(ctx context.Context, list string) ([]models.ListItem, error) {
	return get[[]models.ListItem](ctx, c, "/api/admin/lists/"+url.PathEscape(list))
}

func (c *Client) AddListItem(ctx context.Context, list, name string) (models.ListItem, error) {
	var out models.ListItem
	err := c.call(ctx, http.MethodPost, "/api/admin/lists/"+url.PathEscape(list), academy.ListItemRequest{Name: name}, &out)
	return out, err
}

func (c *Client) RemoveListItem(ctx context.Context, list, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/admin/lists/"+url.PathEscape(list)+"/"+url.PathEscape(id), nil, nil)
}
