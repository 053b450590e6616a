package model

import "github.com/workforce-labs/caseflow/pkg/domain/types"

// User is a directory entry resolved from the external employee directory
type User struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Role       types.Role `json:"role"`
	EmployeeID string     `json:"employeeId"`
}

// DisplayName returns "First Last" for notifications and audit tags
func (u *User) DisplayName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// BlobRef is the blob store's receipt for an uploaded document
type BlobRef struct {
	StorageRef string `json:"storageRef"`
	URL        string `json:"url"`
	Size       int64  `json:"size"`
	MimeType   string `json:"mimeType"`
}
