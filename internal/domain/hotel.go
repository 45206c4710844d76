package domain

import "time"

// CreatedLayout formats CanonicalHotel.Created.
const CreatedLayout = "2006-01-02T15:04:05.000000"

// CanonicalHotel is the normalized hotel record every supplier is mapped into.
// Nullable scalars are pointers; every list is non-nil so it encodes as [].
// No field carries omitempty: consumers index by key unconditionally.
type CanonicalHotel struct {
	Created           string  `json:"created"`
	Timestamp         int64   `json:"timestamp"`
	HotelID           string  `json:"hotel_id"`
	Name              *string `json:"name"`
	NameLocal         *string `json:"name_local"`
	HotelFormerlyName *string `json:"hotel_formerly_name"`
	DestinationCode   *string `json:"destination_code"`
	CountryCode       *string `json:"country_code"`
	BrandText         *string `json:"brand_text"`
	PropertyType      *string `json:"property_type"`
	StarRating        *string `json:"star_rating"`
	Chain             *string `json:"chain"`
	Brand             *string `json:"brand"`
	Logo              *string `json:"logo"`
	PrimaryPhoto      *string `json:"primary_photo"`

	ReviewRating ReviewRating `json:"review_rating"`
	Policies     Policies     `json:"policies"`
	Address      Address      `json:"address"`
	Contacts     Contacts     `json:"contacts"`

	Descriptions       []Description `json:"descriptions"`
	RoomType           []Room        `json:"room_type"`
	SpokenLanguages    []Feature     `json:"spoken_languages"`
	Amenities          []Feature     `json:"amenities"`
	Facilities         []Feature     `json:"facilities"`
	HotelPhoto         []Photo       `json:"hotel_photo"`
	PointOfInterests   []Place       `json:"point_of_interests"`
	NearestAirports    []Place       `json:"nearest_airports"`
	TrainStations      []Place       `json:"train_stations"`
	ConnectedLocations []Place       `json:"connected_locations"`
	Stadiums           []Place       `json:"stadiums"`
}

type ReviewRating struct {
	Source          *string `json:"source"`
	NumberOfReviews *string `json:"number_of_reviews"`
	RatingAverage   *string `json:"rating_average"`
	PopularityScore *string `json:"popularity_score"`
}

type Policies struct {
	Checkin                 Checkin                `json:"checkin"`
	Checkout                Checkout               `json:"checkout"`
	Fees                    Fees                   `json:"fees"`
	KnowBeforeYouGo         *string                `json:"know_before_you_go"`
	Pets                    *string                `json:"pets"`
	Remark                  *string                `json:"remark"`
	ChildAndExtraBedPolicy  ChildAndExtraBedPolicy `json:"child_and_extra_bed_policy"`
	NationalityRestrictions *string                `json:"nationality_restrictions"`
}

type Checkin struct {
	BeginTime    *string `json:"begin_time"`
	EndTime      *string `json:"end_time"`
	Instructions *string `json:"instructions"`
	MinAge       *string `json:"min_age"`
}

type Checkout struct {
	Time *string `json:"time"`
}

type Fees struct {
	Optional  *string `json:"optional"`
	Mandatory *string `json:"mandatory"`
}

type ChildAndExtraBedPolicy struct {
	InfantAge        *string `json:"infant_age"`
	ChildrenAgeFrom  *string `json:"children_age_from"`
	ChildrenAgeTo    *string `json:"children_age_to"`
	ChildrenStayFree *string `json:"children_stay_free"`
	MinGuestAge      *string `json:"min_guest_age"`
}

// Address holds the primary rendering; LocalLang repeats the geographic
// fields for a secondary locale and is a copy of the primary in practice.
type Address struct {
	Latitude          *float64       `json:"latitude"`
	Longitude         *float64       `json:"longitude"`
	AddressLine1      *string        `json:"address_line_1"`
	AddressLine2      *string        `json:"address_line_2"`
	City              *string        `json:"city"`
	State             *string        `json:"state"`
	Country           *string        `json:"country"`
	CountryCode       *string        `json:"country_code"`
	PostalCode        *string        `json:"postal_code"`
	FullAddress       *string        `json:"full_address"`
	GoogleMapSiteLink *string        `json:"google_map_site_link"`
	LocalLang         LocalAddress   `json:"local_lang"`
	Mapping           AddressMapping `json:"mapping"`
}

type LocalAddress struct {
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	AddressLine1      *string  `json:"address_line_1"`
	AddressLine2      *string  `json:"address_line_2"`
	City              *string  `json:"city"`
	State             *string  `json:"state"`
	Country           *string  `json:"country"`
	CountryCode       *string  `json:"country_code"`
	PostalCode        *string  `json:"postal_code"`
	FullAddress       *string  `json:"full_address"`
	GoogleMapSiteLink *string  `json:"google_map_site_link"`
}

type AddressMapping struct {
	ContinentID *string `json:"continent_id"`
	CountryID   *string `json:"country_id"`
	ProvinceID  *string `json:"province_id"`
	StateID     *string `json:"state_id"`
	CityID      *string `json:"city_id"`
	AreaID      *string `json:"area_id"`
}

type Contacts struct {
	PhoneNumbers []string `json:"phone_numbers"`
	Fax          []string `json:"fax"`
	EmailAddress []string `json:"email_address"`
	Website      []string `json:"website"`
}

type Description struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`
}

type Room struct {
	RoomID         *string    `json:"room_id"`
	Title          *string    `json:"title"`
	TitleLang      *string    `json:"title_lang"`
	RoomPic        *string    `json:"room_pic"`
	Description    *string    `json:"description"`
	MaxAllowed     MaxAllowed `json:"max_allowed"`
	NoOfRoom       *string    `json:"no_of_room"`
	RoomSize       *string    `json:"room_size"`
	BedType        []BedType  `json:"bed_type"`
	SharedBathroom *string    `json:"shared_bathroom"`
	Amenities      []string   `json:"amenities"`
}

type MaxAllowed struct {
	Total    *string `json:"total"`
	Adults   *string `json:"adults"`
	Children *string `json:"children"`
	Infant   *string `json:"infant"`
}

type BedType struct {
	Description   *string            `json:"description"`
	Configuration []BedConfiguration `json:"configuration"`
	MaxExtrabeds  *string            `json:"max_extrabeds"`
}

type BedConfiguration struct {
	Type     *string `json:"type"`
	Size     *string `json:"size"`
	Quantity *string `json:"quantity"`
}

// Feature is one spoken language, amenity or facility. Icon is decorative.
type Feature struct {
	Type  *string `json:"type"`
	Title *string `json:"title"`
	Icon  string  `json:"icon"`
}

type Photo struct {
	PictureID *string `json:"picture_id"`
	Title     *string `json:"title"`
	URL       *string `json:"url"`
}

// Place is a point of interest, airport, station, connected location or stadium.
type Place struct {
	Code     *string `json:"code"`
	Name     *string `json:"name"`
	Distance *string `json:"distance,omitempty"`
}

// Stamp sets the record's creation time fields to t.
func (h *CanonicalHotel) Stamp(t time.Time) {
	h.Created = t.Format(CreatedLayout)
	h.Timestamp = t.Unix()
}
