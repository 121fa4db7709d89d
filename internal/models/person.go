package models

// Person is a character in the catalog.
// The descriptive fields are free-form strings as published by SWAPI
// (e.g. Height "172", BirthYear "19BBY"); empty means unknown.
type Person struct {
	ID          int64
	Name        string
	Height      string
	Mass        string
	HairColor   string
	SkinColor   string
	EyeColor    string
	BirthYear   string
	Gender      string
	Description string
}
