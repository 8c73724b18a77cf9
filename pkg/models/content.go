package models

// BlogPost is an article on the academy blog. Author is an informal reference
// to a TeamMember name.
type BlogPost struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Author   string   `json:"author"`
	Date     string   `json:"date"`
	Image    string   `json:"image"`
	Images   []string `json:"images,omitempty"`
	Category string   `json:"category"`
}

// PostDateLayout formats the default display date of new posts.
const PostDateLayout = "January 2, 2006"

type TeamMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Bio   string `json:"bio"`
	Image string `json:"image"`
}

type Testimonial struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Quote string `json:"quote"`
}

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
)

type SocialFeedItem struct {
	ID       string   `json:"id"`
	Platform Platform `json:"type"`
	Image    string   `json:"image"`
	Caption  string   `json:"caption"`
	Likes    int      `json:"likes"`
}

// Announcement is a modal notice shown to visitors. The button is rendered
// only when both ButtonText and ButtonURL are set.
type Announcement struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Image      string `json:"image"`
	Content    string `json:"content"`
	ButtonText string `json:"buttonText,omitempty"`
	ButtonURL  string `json:"buttonUrl,omitempty"`
	Disabled   bool   `json:"disabled"`
}

// HasButton reports whether the announcement carries a complete call to action.
func (a Announcement) HasButton() bool {
	return a.ButtonText != "" && a.ButtonURL != ""
}

// Settings is the singleton holding contact details and social links.
type Settings struct {
	FacebookURL  string `json:"facebookUrl"`
	TwitterURL   string `json:"twitterUrl"`
	InstagramURL string `json:"instagramUrl"`
	LinkedinURL  string `json:"linkedinUrl"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// PageContent is the singleton mapping page name to its editable text fields.
type PageContent map[string]map[string]string

// Clone returns a deep copy.
func (p PageContent) Clone() PageContent {
	if p == nil {
		return nil
	}
	out := make(PageContent, len(p))
	for page, fields := range p {
		copied := make(map[string]string, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		out[page] = copied
	}
	return out
}

// MultilineThreshold is the length above which a page field is edited as
// multi-line text.
const MultilineThreshold = 50

// IsMultiline reports whether a page-content value should be edited multi-line.
func IsMultiline(value string) bool {
	return len(value) > MultilineThreshold
}

// ListItem is a record of the categories, instructors and levels lists.
type ListItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
