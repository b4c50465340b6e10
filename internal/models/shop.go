package models

import (
	"time"

	"github.com/google/uuid"
)

// ShopStatus определяет статус заведения в каталоге
type ShopStatus string

const (
	ShopStatusPending  ShopStatus = "pending"
	ShopStatusApproved ShopStatus = "approved"
	ShopStatusRejected ShopStatus = "rejected"
)

// Shop представляет заведение каталога: магазин, храм, туристическое место или услугу
type Shop struct {
	ID            uuid.UUID  `json:"id"`
	OwnerID       uuid.UUID  `json:"owner_id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	CategoryID    uuid.UUID  `json:"category_id"`
	SubCategoryID *uuid.UUID `json:"sub_category_id,omitempty"`
	Address       string     `json:"address"`
	Location      string     `json:"location"`
	Phone         string     `json:"phone"`
	Images        []string   `json:"images"`
	Status        ShopStatus `json:"status"`
	SubmittedDate time.Time  `json:"submitted_date"`
	ApprovedDate  *time.Time `json:"approved_date,omitempty"`
	Featured      bool       `json:"featured"`
	Sponsored     bool       `json:"sponsored"`
}

// ShopPatch описывает частичное обновление заведения.
// Поля со значением nil не затрагиваются; ID и SubmittedDate изменить нельзя.
type ShopPatch struct {
	Name          *string    `json:"name,omitempty"`
	Description   *string    `json:"description,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	SubCategoryID *uuid.UUID `json:"sub_category_id,omitempty"`
	Address       *string    `json:"address,omitempty"`
	Location      *string    `json:"location,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Images        *[]string  `json:"images,omitempty"`
}

// Apply накладывает частичное обновление на копию заведения
func (p ShopPatch) Apply(shop Shop) Shop {
	if p.Name != nil {
		shop.Name = *p.Name
	}
	if p.Description != nil {
		shop.Description = *p.Description
	}
	if p.CategoryID != nil {
		shop.CategoryID = *p.CategoryID
	}
	if p.SubCategoryID != nil {
		shop.SubCategoryID = p.SubCategoryID
	}
	if p.Address != nil {
		shop.Address = *p.Address
	}
	if p.Location != nil {
		shop.Location = *p.Location
	}
	if p.Phone != nil {
		shop.Phone = *p.Phone
	}
	if p.Images != nil {
		shop.Images = *p.Images
	}
	return shop
}
