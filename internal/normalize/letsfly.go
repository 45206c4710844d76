package normalize

import "hotel_content/internal/domain"

const letsflyCheckout = "12:00"

func mapLetsfly(raw any, h *domain.CanonicalHotel) error {
	m, err := object(domain.SupplierLetsfly, raw)
	if err != nil {
		return err
	}
	hotel := digMap(m, "data")
	if err := setID(h, dig(hotel, "hotel_code")); err != nil {
		return err
	}

	h.Name = digSP(hotel, "hotel_name")
	h.StarRating = cleanStar(dig(hotel, "star_rating"))
	h.PropertyType = digSP(hotel, "property_type")
	h.DestinationCode = digSP(hotel, "city_code")

	line1 := digStr(hotel, "address")
	h.Address = domain.Address{
		Latitude:     digFloat(hotel, "latitude"),
		Longitude:    digFloat(hotel, "longitude"),
		AddressLine1: ptr(line1),
		City:         digSP(hotel, "city"),
		Country:      digSP(hotel, "country"),
		CountryCode:  digSP(hotel, "country_code"),
		PostalCode:   digSP(hotel, "zip_code"),
		FullAddress:  ptr(joinNonEmpty(", ", line1, digStr(hotel, "city"), digStr(hotel, "zip_code"), digStr(hotel, "country"))),
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(hotel, "phone"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(hotel, "email"))
	h.Contacts.Website = appendNonEmpty(h.Contacts.Website, digStr(hotel, "website"))

	h.Policies.Checkin.BeginTime = digSP(hotel, "checkin_time")
	h.Policies.Checkout.Time = ptr(letsflyCheckout)

	addDescription(h, "Hotel Description", htmlText(digStr(hotel, "description")))

	for _, g := range digList(hotel, "facilities") {
		items := stringsOf(digList(g, "items"))
		if len(items) == 0 {
			addFacilities(h, str(g))
			continue
		}
		if digStr(g, "group") == "Room" {
			addAmenities(h, items...)
			continue
		}
		addFacilities(h, items...)
	}
	for _, img := range digList(hotel, "images") {
		addPhoto(h, "", digStr(img, "title"), firstNonEmpty(digStr(img, "url"), str(img)))
	}
	for _, r := range digList(hotel, "rooms") {
		room := newRoom()
		room.RoomID = digSP(r, "room_code")
		room.Title = digSP(r, "room_name")
		room.MaxAllowed.Adults = digSP(r, "max_adults")
		room.MaxAllowed.Children = digSP(r, "max_children")
		if b := digStr(r, "bed_type"); b != "" {
			room.BedType = append(room.BedType, bed(b, b, "", ""))
		}
		h.RoomType = append(h.RoomType, room)
	}
	return nil
}
