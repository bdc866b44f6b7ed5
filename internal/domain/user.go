package domain

import (
	"time"
)

type Role string

const (
	RoleCompany Role = "company"
	RoleWorker  Role = "worker"
)

type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

type Worker struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
