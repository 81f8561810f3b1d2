package entity

// Entity is anything that can be persisted as a document.
type Entity interface {
	Slug() string
}
