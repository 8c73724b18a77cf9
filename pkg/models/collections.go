package models

// Collection names a group of records in the document store.
type Collection string

const (
	CollectionCourses       Collection = "courses"
	CollectionBlogPosts     Collection = "blogPosts"
	CollectionTeam          Collection = "team"
	CollectionTestimonials  Collection = "testimonials"
	CollectionSocialFeed    Collection = "socialFeed"
	CollectionLeads         Collection = "leads"
	CollectionAnnouncements Collection = "announcements"
	CollectionCategories    Collection = "categories"
	CollectionInstructors   Collection = "instructors"
	CollectionLevels        Collection = "levels"

	// Singleton collections hold a single document with id SingletonID.
	CollectionSettings    Collection = "settings"
	CollectionPageContent Collection = "pageContent"
)

// SingletonID is the document id under which singleton records are stored.
const SingletonID = "main"

// AllCollections lists every collection known to the site, singletons included.
func AllCollections() []Collection {
	return []Collection{
		CollectionCourses,
		CollectionBlogPosts,
		CollectionTeam,
		CollectionTestimonials,
		CollectionSocialFeed,
		CollectionLeads,
		CollectionAnnouncements,
		CollectionCategories,
		CollectionInstructors,
		CollectionLevels,
		CollectionSettings,
		CollectionPageContent,
	}
}

// ListCollection maps an auxiliary list name (as used in URLs) to its collection.
func ListCollection(name string) (Collection, bool) {
	switch Collection(name) {
	case CollectionCategories, CollectionInstructors, CollectionLevels:
		return Collection(name), true
	}
	return "", false
}

func (c Collection) String() string {
	return string(c)
}
