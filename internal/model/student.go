package model

// Student represents a student record owned by a single user account.
type Student struct {
	StudentID      string `dynamodbav:"student_id" json:"student_id"`
	FirstName      string `dynamodbav:"first_name" json:"first_name"`
	LastName       string `dynamodbav:"last_name" json:"last_name"`
	Email          string `dynamodbav:"email" json:"email"`
	MobileNumber   string `dynamodbav:"mobile_number" json:"mobile_number"`
	Course         string `dynamodbav:"course" json:"course"`
	ProfilePicture string `dynamodbav:"profile_picture" json:"profile_picture"`
	UserID         string `dynamodbav:"user_id" json:"user_id"`
}
