package normalize

import (
	"strings"
	"time"

	"hotel_content/internal/domain"
)

const (
	mapsLinkPrefix = "http://maps.google.com/maps?q="

	iconLanguage = "mdi mdi-translate-variant"
	iconAmenity  = "mdi mdi-alpha-f-circle-outline"
	iconFacility = "mdi mdi-alpha-f-circle-outline"
)

// newHotel returns a record with every list allocated so nothing encodes
// as null where consumers expect [].
func newHotel(now time.Time) *domain.CanonicalHotel {
	h := &domain.CanonicalHotel{
		Contacts: domain.Contacts{
			PhoneNumbers: []string{},
			Fax:          []string{},
			EmailAddress: []string{},
			Website:      []string{},
		},
		Descriptions:       []domain.Description{},
		RoomType:           []domain.Room{},
		SpokenLanguages:    []domain.Feature{},
		Amenities:          []domain.Feature{},
		Facilities:         []domain.Feature{},
		HotelPhoto:         []domain.Photo{},
		PointOfInterests:   []domain.Place{},
		NearestAirports:    []domain.Place{},
		TrainStations:      []domain.Place{},
		ConnectedLocations: []domain.Place{},
		Stadiums:           []domain.Place{},
	}
	h.Stamp(now)
	return h
}

func newRoom() domain.Room {
	return domain.Room{BedType: []domain.BedType{}, Amenities: []string{}}
}

func feature(kind, title, icon string) domain.Feature {
	return domain.Feature{Type: ptr(kind), Title: ptr(title), Icon: icon}
}

func addLanguages(h *domain.CanonicalHotel, titles ...string) {
	for _, t := range titles {
		if strings.TrimSpace(t) != "" {
			h.SpokenLanguages = append(h.SpokenLanguages, feature("spoken_languages", t, iconLanguage))
		}
	}
}

func addAmenities(h *domain.CanonicalHotel, titles ...string) {
	for _, t := range titles {
		if strings.TrimSpace(t) != "" {
			h.Amenities = append(h.Amenities, feature("amenities", t, iconAmenity))
		}
	}
}

func addFacilities(h *domain.CanonicalHotel, titles ...string) {
	for _, t := range titles {
		if strings.TrimSpace(t) != "" {
			h.Facilities = append(h.Facilities, feature("facilities", t, iconFacility))
		}
	}
}

func addDescription(h *domain.CanonicalHotel, title, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	h.Descriptions = append(h.Descriptions, domain.Description{Title: ptr(title), Text: ptr(text)})
}

func addPhoto(h *domain.CanonicalHotel, id, title, url string) {
	if strings.TrimSpace(url) == "" {
		return
	}
	h.HotelPhoto = append(h.HotelPhoto, domain.Photo{PictureID: ptr(id), Title: ptr(title), URL: ptr(url)})
}

func place(code, name string) domain.Place {
	return domain.Place{Code: ptr(code), Name: ptr(name)}
}

func placeAt(code, name, distance string) domain.Place {
	p := place(code, name)
	p.Distance = ptr(distance)
	return p
}

func bed(description, typ, size, quantity string) domain.BedType {
	b := domain.BedType{Description: ptr(description), Configuration: []domain.BedConfiguration{}}
	if typ != "" || size != "" || quantity != "" {
		b.Configuration = append(b.Configuration, domain.BedConfiguration{
			Type: ptr(typ), Size: ptr(size), Quantity: ptr(quantity),
		})
	}
	return b
}

func mapsLink(addr string) *string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil
	}
	link := mapsLinkPrefix + strings.ReplaceAll(addr, " ", "+")
	return &link
}

// finalize applies the rules every supplier shares once its mapper ran.
func finalize(h *domain.CanonicalHotel) {
	a := &h.Address
	a.GoogleMapSiteLink = mapsLink(firstNonEmpty(deref(a.AddressLine1), deref(a.FullAddress)))
	if h.CountryCode == nil {
		h.CountryCode = a.CountryCode
	}
	a.LocalLang = domain.LocalAddress{
		Latitude:          a.Latitude,
		Longitude:         a.Longitude,
		AddressLine1:      a.AddressLine1,
		AddressLine2:      a.AddressLine2,
		City:              a.City,
		State:             a.State,
		Country:           a.Country,
		CountryCode:       a.CountryCode,
		PostalCode:        a.PostalCode,
		FullAddress:       a.FullAddress,
		GoogleMapSiteLink: a.GoogleMapSiteLink,
	}

	if h.PrimaryPhoto == nil && len(h.HotelPhoto) > 0 {
		h.PrimaryPhoto = h.HotelPhoto[0].URL
	}

	c := &h.Contacts
	c.PhoneNumbers = nonNil(c.PhoneNumbers)
	c.Fax = nonNil(c.Fax)
	c.EmailAddress = nonNil(c.EmailAddress)
	c.Website = nonNil(c.Website)
	for i := range h.RoomType {
		r := &h.RoomType[i]
		if r.BedType == nil {
			r.BedType = []domain.BedType{}
		}
		for j := range r.BedType {
			if r.BedType[j].Configuration == nil {
				r.BedType[j].Configuration = []domain.BedConfiguration{}
			}
		}
		r.Amenities = nonNil(r.Amenities)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// setID records the supplier's own hotel identifier; empty is fatal.
func setID(h *domain.CanonicalHotel, v any) error {
	h.HotelID = str(v)
	if h.HotelID == "" {
		return domain.ErrMissingHotelID
	}
	return nil
}
