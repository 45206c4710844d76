package normalize

import "hotel_content/internal/domain"

// Hotelston carries nearly everything in attributes.
func mapHotelston(raw any, h *domain.CanonicalHotel) error {
	m, err := xmlObject(domain.SupplierHotelston, raw)
	if err != nil {
		return err
	}
	hotel := dig(findFirst(soapBody(m), "hotel"), 0)
	if err := setID(h, dig(hotel, "@id")); err != nil {
		return err
	}

	h.Name = digSP(hotel, "@name")
	h.StarRating = cleanStar(firstNonEmpty(digStr(hotel, "@starRating"), digStr(hotel, "@stars")))
	h.PropertyType = digSP(hotel, "@type")

	addr := digMap(hotel, "address")
	line1 := digStr(addr, "@street")
	city := firstNonEmpty(digStr(hotel, "city", "@name"), digStr(addr, "@city"))
	country := digStr(hotel, "country", "@name")
	postal := digStr(addr, "@zip")
	h.DestinationCode = digSP(hotel, "city", "@id")
	h.Address = domain.Address{
		Latitude:     digFloat(hotel, "coordinates", "@latitude"),
		Longitude:    digFloat(hotel, "coordinates", "@longitude"),
		AddressLine1: ptr(line1),
		City:         ptr(city),
		Country:      ptr(country),
		CountryCode:  digSP(hotel, "country", "@code"),
		PostalCode:   ptr(postal),
		FullAddress:  ptr(joinNonEmpty(", ", line1, city, postal, country)),
		Mapping: domain.AddressMapping{
			CountryID: digSP(hotel, "country", "@id"),
			CityID:    digSP(hotel, "city", "@id"),
		},
	}

	contact := digMap(hotel, "contact")
	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(contact, "@phone"))
	h.Contacts.Fax = appendNonEmpty(h.Contacts.Fax, digStr(contact, "@fax"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(contact, "@email"))
	h.Contacts.Website = appendNonEmpty(h.Contacts.Website, digStr(contact, "@website"))

	h.Policies.Checkin.BeginTime = digSP(hotel, "checkIn", "@from")
	h.Policies.Checkin.EndTime = digSP(hotel, "checkIn", "@to")
	h.Policies.Checkout.Time = digSP(hotel, "checkOut", "@to")

	for _, d := range digList(hotel, "descriptions", "description") {
		addDescription(h, digStr(d, "@type"), htmlText(str(d)))
	}
	for _, f := range digList(hotel, "facilities", "facility") {
		addFacilities(h, digStr(f, "@name"))
	}
	for _, img := range digList(hotel, "images", "image") {
		addPhoto(h, digStr(img, "@id"), digStr(img, "@description"), digStr(img, "@url"))
	}
	for _, r := range digList(hotel, "roomTypes", "roomType") {
		room := newRoom()
		room.RoomID = digSP(r, "@id")
		room.Title = digSP(r, "@name")
		room.MaxAllowed.Total = digSP(r, "@maxOccupancy")
		h.RoomType = append(h.RoomType, room)
	}
	return nil
}
