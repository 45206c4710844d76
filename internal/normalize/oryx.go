package normalize

import "hotel_content/internal/domain"

func mapOryx(raw any, h *domain.CanonicalHotel) error {
	hotel, err := object(domain.SupplierOryx, raw)
	if err != nil {
		return err
	}
	if err := setID(h, dig(hotel, "hotelCode")); err != nil {
		return err
	}

	h.Name = digSP(hotel, "hotelName")
	h.StarRating = cleanStar(dig(hotel, "starRating"))
	h.DestinationCode = digSP(hotel, "cityCode")

	line1 := digStr(hotel, "address")
	h.Address = domain.Address{
		Latitude:     digFloat(hotel, "latitude"),
		Longitude:    digFloat(hotel, "longitude"),
		AddressLine1: ptr(line1),
		City:         digSP(hotel, "cityName"),
		Country:      digSP(hotel, "countryName"),
		CountryCode:  digSP(hotel, "countryCode"),
		PostalCode:   digSP(hotel, "zipCode"),
		FullAddress:  ptr(joinNonEmpty(", ", line1, digStr(hotel, "cityName"), digStr(hotel, "zipCode"), digStr(hotel, "countryName"))),
		Mapping:      domain.AddressMapping{CityID: digSP(hotel, "cityCode")},
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(hotel, "phone"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(hotel, "email"))
	h.Contacts.Website = appendNonEmpty(h.Contacts.Website, digStr(hotel, "website"))

	h.Policies.Checkin.BeginTime = digSP(hotel, "checkInTime")
	h.Policies.Checkout.Time = digSP(hotel, "checkOutTime")

	addDescription(h, "Hotel Description", htmlText(digStr(hotel, "description")))
	addAmenities(h, stringsOf(digList(hotel, "amenities"))...)
	for i, img := range digList(hotel, "images") {
		addPhoto(h, str(i+1), "", firstNonEmpty(digStr(img, "url"), str(img)))
	}
	for _, r := range digList(hotel, "rooms") {
		room := newRoom()
		room.RoomID = digSP(r, "roomCode")
		room.Title = digSP(r, "roomName")
		room.MaxAllowed.Total = digSP(r, "maxOccupancy")
		h.RoomType = append(h.RoomType, room)
	}
	return nil
}
