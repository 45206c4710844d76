package normalize

import "hotel_content/internal/domain"

func mapIllusions(raw any, h *domain.CanonicalHotel) error {
	m, err := object(domain.SupplierIllusions, raw)
	if err != nil {
		return err
	}
	hotel := digMap(m, "hotel")
	if err := setID(h, dig(hotel, "hotelCode")); err != nil {
		return err
	}

	h.Name = digSP(hotel, "hotelName")
	h.StarRating = starFromText(digStr(hotel, "starRating"))
	h.PropertyType = digSP(hotel, "propertyType")
	h.DestinationCode = digSP(hotel, "cityCode")

	line1 := digStr(hotel, "address")
	h.Address = domain.Address{
		Latitude:     digFloat(hotel, "latitude"),
		Longitude:    digFloat(hotel, "longitude"),
		AddressLine1: ptr(line1),
		City:         digSP(hotel, "city"),
		Country:      digSP(hotel, "country"),
		CountryCode:  digSP(hotel, "countryCode"),
		PostalCode:   digSP(hotel, "postalCode"),
		FullAddress:  ptr(joinNonEmpty(", ", line1, digStr(hotel, "city"), digStr(hotel, "postalCode"), digStr(hotel, "country"))),
		Mapping:      domain.AddressMapping{CityID: digSP(hotel, "cityCode")},
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(hotel, "phone"))
	h.Contacts.Fax = appendNonEmpty(h.Contacts.Fax, digStr(hotel, "fax"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(hotel, "email"))
	h.Contacts.Website = appendNonEmpty(h.Contacts.Website, digStr(hotel, "website"))

	h.Policies.Checkin.BeginTime = digSP(hotel, "checkIn")
	h.Policies.Checkout.Time = digSP(hotel, "checkOut")

	addDescription(h, "Hotel Description", htmlText(digStr(hotel, "description")))
	addAmenities(h, splitList(digStr(hotel, "amenities"), ",")...)

	for _, img := range digList(hotel, "images") {
		addPhoto(h, "", digStr(img, "caption"), firstNonEmpty(digStr(img, "url"), str(img)))
	}
	for _, r := range digList(hotel, "rooms") {
		room := newRoom()
		room.RoomID = digSP(r, "roomCode")
		room.Title = digSP(r, "roomName")
		room.MaxAllowed.Total = digSP(r, "maxPax")
		h.RoomType = append(h.RoomType, room)
	}
	return nil
}
