package normalize

import "hotel_content/internal/domain"

func mapRoomerang(raw any, h *domain.CanonicalHotel) error {
	m, err := object(domain.SupplierRoomerang, raw)
	if err != nil {
		return err
	}
	hotel := digMap(m, "data", "hotel")
	if err := setID(h, dig(hotel, "id")); err != nil {
		return err
	}

	h.Name = digSP(hotel, "name")
	h.StarRating = cleanStar(dig(hotel, "stars"))
	h.Chain = digSP(hotel, "chain")
	h.PropertyType = digSP(hotel, "type")

	addr := digMap(hotel, "address")
	line1 := digStr(addr, "street")
	h.Address = domain.Address{
		Latitude:     digFloat(hotel, "location", "lat"),
		Longitude:    digFloat(hotel, "location", "lng"),
		AddressLine1: ptr(line1),
		City:         digSP(addr, "city"),
		State:        digSP(addr, "state"),
		Country:      digSP(addr, "country"),
		CountryCode:  digSP(addr, "countryCode"),
		PostalCode:   digSP(addr, "zip"),
		FullAddress:  ptr(joinNonEmpty(", ", line1, digStr(addr, "city"), digStr(addr, "zip"), digStr(addr, "country"))),
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(hotel, "phone"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(hotel, "email"))
	h.Contacts.Website = appendNonEmpty(h.Contacts.Website, digStr(hotel, "website"))

	h.Policies.Checkin.BeginTime = digSP(hotel, "checkIn", "from")
	h.Policies.Checkin.EndTime = digSP(hotel, "checkIn", "to")
	h.Policies.Checkout.Time = digSP(hotel, "checkOut", "until")

	addDescription(h, "Hotel Description", htmlText(digStr(hotel, "description")))
	addLanguages(h, stringsOf(digList(hotel, "languages"))...)
	addAmenities(h, stringsOf(digList(hotel, "amenities"))...)
	addFacilities(h, stringsOf(digList(hotel, "facilities"))...)

	for _, img := range digList(hotel, "images") {
		url := digStr(img, "url")
		addPhoto(h, digStr(img, "id"), digStr(img, "caption"), url)
		if h.PrimaryPhoto == nil && digStr(img, "isMain") == "true" {
			h.PrimaryPhoto = ptr(url)
		}
	}

	for _, r := range digList(hotel, "rooms") {
		room := newRoom()
		room.RoomID = digSP(r, "id")
		room.Title = digSP(r, "name")
		room.Description = sp(htmlText(digStr(r, "description")))
		room.RoomSize = digSP(r, "size")
		room.MaxAllowed = domain.MaxAllowed{
			Total:    digSP(r, "maxOccupancy"),
			Adults:   digSP(r, "maxAdults"),
			Children: digSP(r, "maxChildren"),
		}
		for _, b := range digList(r, "beds") {
			room.BedType = append(room.BedType, bed(digStr(b, "type"), digStr(b, "type"), "", digStr(b, "count")))
		}
		room.Amenities = appendNonEmpty(room.Amenities, stringsOf(digList(r, "amenities"))...)
		h.RoomType = append(h.RoomType, room)
	}
	return nil
}
