package model

// Course represents a catalog entry. The name is the unique key; renaming is
// modeled as an insert under the new name followed by a delete of the old one.
type Course struct {
	Name     string `dynamodbav:"name" json:"name"`
	Duration string `dynamodbav:"duration" json:"duration"`
}
