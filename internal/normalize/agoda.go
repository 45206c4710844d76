package normalize

import (
	"strings"

	"hotel_content/internal/domain"
)

func mapAgoda(raw any, h *domain.CanonicalHotel) error {
	m, err := object(domain.SupplierAgoda, raw)
	if err != nil {
		return err
	}
	feed := getOr(m, m, "hotel_feed_full")
	hotel := dig(feed, "hotels", "hotel", 0)
	if err := setID(h, dig(hotel, "hotel_id")); err != nil {
		return err
	}

	h.Name = digSP(hotel, "hotel_name")
	h.NameLocal = digSP(hotel, "translated_name")
	h.HotelFormerlyName = digSP(hotel, "hotel_formerly_name")
	h.StarRating = cleanStar(dig(hotel, "star_rating"))
	h.PropertyType = digSP(hotel, "accommodation_type")
	h.DestinationCode = digSP(hotel, "city_id")
	h.ReviewRating = domain.ReviewRating{
		Source:          ptr("Agoda"),
		NumberOfReviews: digSP(hotel, "number_of_reviews"),
		RatingAverage:   digSP(hotel, "rating_average"),
		PopularityScore: digSP(hotel, "popularity_score"),
	}

	cp := digMap(hotel, "child_and_extra_bed_policy")
	h.Policies.ChildAndExtraBedPolicy = domain.ChildAndExtraBedPolicy{
		InfantAge:        digSP(cp, "infant_age"),
		ChildrenAgeFrom:  digSP(cp, "children_age_from"),
		ChildrenAgeTo:    digSP(cp, "children_age_to"),
		ChildrenStayFree: digSP(cp, "children_stay_free"),
		MinGuestAge:      digSP(cp, "min_guest_age"),
	}
	h.Policies.NationalityRestrictions = digSP(hotel, "nationality_restrictions")
	h.Policies.Remark = digSP(hotel, "remark")

	var addr any
	for _, a := range digList(feed, "addresses", "address") {
		if addr == nil || strings.EqualFold(digStr(a, "address_type"), "English address") {
			addr = a
		}
	}
	line1 := digStr(addr, "address_line_1")
	city := digStr(addr, "city")
	postal := digStr(addr, "postal_code")
	country := digStr(addr, "country")
	h.Address = domain.Address{
		Latitude:     digFloat(hotel, "latitude"),
		Longitude:    digFloat(hotel, "longitude"),
		AddressLine1: ptr(line1),
		AddressLine2: digSP(addr, "address_line_2"),
		City:         ptr(city),
		State:        digSP(addr, "state"),
		Country:      ptr(country),
		PostalCode:   ptr(postal),
		FullAddress:  ptr(joinNonEmpty(", ", line1, digStr(addr, "address_line_2"), city, postal, country)),
		Mapping: domain.AddressMapping{
			ContinentID: digSP(hotel, "continent_id"),
			CountryID:   digSP(hotel, "country_id"),
			CityID:      digSP(hotel, "city_id"),
			AreaID:      digSP(hotel, "area_id"),
		},
	}
	h.Contacts.Website = appendNonEmpty(h.Contacts.Website, digStr(hotel, "hotel_url"))

	for _, d := range digList(feed, "hotel_descriptions", "hotel_description") {
		addDescription(h, "Overview", htmlText(digStr(d, "overview")))
		addDescription(h, "Snippet", htmlText(digStr(d, "snippet")))
	}

	for _, f := range digList(feed, "facilities", "facility") {
		group := strings.ToLower(digStr(f, "property_group_description"))
		name := digStr(f, "property_name")
		switch {
		case strings.Contains(group, "language"):
			addLanguages(h, name)
		case strings.Contains(group, "room"):
			addAmenities(h, name)
		default:
			addFacilities(h, name)
		}
	}

	for _, p := range digList(feed, "pictures", "picture") {
		addPhoto(h, digStr(p, "picture_id"), digStr(p, "caption"), digStr(p, "URL"))
	}

	for _, rt := range digList(feed, "roomtypes", "roomtype") {
		room := newRoom()
		room.RoomID = digSP(rt, "hotel_room_type_id")
		room.Title = digSP(rt, "standard_caption")
		room.TitleLang = digSP(rt, "hotel_room_type_alternate_name")
		room.RoomPic = digSP(rt, "hotel_room_type_picture")
		room.MaxAllowed = domain.MaxAllowed{
			Total:  digSP(rt, "max_occupancy_per_room"),
			Infant: digSP(rt, "max_infant_in_room"),
		}
		room.NoOfRoom = digSP(rt, "no_of_room")
		room.RoomSize = digSP(rt, "size_of_room")
		room.SharedBathroom = digSP(rt, "shared_bathroom")
		bt := bed(digStr(rt, "bed_type"), digStr(rt, "bed_type"), "", "")
		bt.MaxExtrabeds = digSP(rt, "max_extrabeds")
		if bt.Description != nil || bt.MaxExtrabeds != nil {
			room.BedType = append(room.BedType, bt)
		}
		h.RoomType = append(h.RoomType, room)
	}
	return nil
}
