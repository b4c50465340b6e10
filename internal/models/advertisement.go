package models

import (
	"time"

	"github.com/google/uuid"
)

// AdStatus определяет статус объявления
type AdStatus string

const (
	AdStatusPending  AdStatus = "pending"
	AdStatusApproved AdStatus = "approved"
	AdStatusRejected AdStatus = "rejected"
	AdStatusLive     AdStatus = "live"
	AdStatusExpired  AdStatus = "expired"
)

// AdDuration определяет срок размещения объявления, выбранный при подаче
type AdDuration string

const (
	AdDuration1Day   AdDuration = "1day"
	AdDuration3Days  AdDuration = "3days"
	AdDuration1Week  AdDuration = "1week"
	AdDuration1Month AdDuration = "1month"
)

// AdContact содержит контактные данные из формы объявления
type AdContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Whatsapp string `json:"whatsapp,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Advertisement представляет объявление на доске объявлений
type Advertisement struct {
	ID            uuid.UUID  `json:"id"`
	OwnerID       uuid.UUID  `json:"owner_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CategoryID    uuid.UUID  `json:"category_id"`
	SubCategoryID *uuid.UUID `json:"sub_category_id,omitempty"`
	Price         string     `json:"price"`
	Address       string     `json:"address"`
	Location      string     `json:"location"`
	Contact       AdContact  `json:"contact"`
	Images        []string   `json:"images"`
	VideoURL      string     `json:"video_url,omitempty"`
	Duration      AdDuration `json:"duration,omitempty"`
	Status        AdStatus   `json:"status"`
	SubmittedDate time.Time  `json:"submitted_date"`
	ApprovedDate  *time.Time `json:"approved_date,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	Featured      bool       `json:"featured"`
	Sponsored     bool       `json:"sponsored"`
}

// AdvertisementPatch описывает частичное обновление объявления.
// Поля со значением nil не затрагиваются; ID и SubmittedDate изменить нельзя.
type AdvertisementPatch struct {
	Title         *string     `json:"title,omitempty"`
	Description   *string     `json:"description,omitempty"`
	CategoryID    *uuid.UUID  `json:"category_id,omitempty"`
	SubCategoryID *uuid.UUID  `json:"sub_category_id,omitempty"`
	Price         *string     `json:"price,omitempty"`
	Address       *string     `json:"address,omitempty"`
	Location      *string     `json:"location,omitempty"`
	Contact       *AdContact  `json:"contact,omitempty"`
	Images        *[]string   `json:"images,omitempty"`
	VideoURL      *string     `json:"video_url,omitempty"`
	Duration      *AdDuration `json:"duration,omitempty"`
}

// Apply накладывает частичное обновление на копию объявления
func (p AdvertisementPatch) Apply(ad Advertisement) Advertisement {
	if p.Title != nil {
		ad.Title = *p.Title
	}
	if p.Description != nil {
		ad.Description = *p.Description
	}
	if p.CategoryID != nil {
		ad.CategoryID = *p.CategoryID
	}
	if p.SubCategoryID != nil {
		ad.SubCategoryID = p.SubCategoryID
	}
	if p.Price != nil {
		ad.Price = *p.Price
	}
	if p.Address != nil {
		ad.Address = *p.Address
	}
	if p.Location != nil {
		ad.Location = *p.Location
	}
	if p.Contact != nil {
		ad.Contact = *p.Contact
	}
	if p.Images != nil {
		ad.Images = *p.Images
	}
	if p.VideoURL != nil {
		ad.VideoURL = *p.VideoURL
	}
	if p.Duration != nil {
		ad.Duration = *p.Duration
	}
	return ad
}
