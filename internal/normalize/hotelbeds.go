package normalize

import "hotel_content/internal/domain"

const hotelbedsPhotoBase = "https://photos.hotelbeds.com/giata/bigger/"

func mapHotelbeds(raw any, h *domain.CanonicalHotel) error {
	m, err := object(domain.SupplierHotelbeds, raw)
	if err != nil {
		return err
	}
	hotel := digMap(m, "hotel")
	if err := setID(h, dig(hotel, "code")); err != nil {
		return err
	}

	h.Name = digSP(hotel, "name", "content")
	h.DestinationCode = digSP(hotel, "destination", "code")
	h.StarRating = starFromText(digStr(hotel, "category", "description", "content"))
	h.Chain = digSP(hotel, "chain", "description", "content")
	h.PropertyType = digSP(hotel, "accommodationType", "typeDescription")

	countryCode := firstNonEmpty(digStr(hotel, "country", "isoCode"), digStr(hotel, "countryCode"))
	line1 := digStr(hotel, "address", "content")
	city := digStr(hotel, "city", "content")
	postal := digStr(hotel, "postalCode")
	country := digStr(hotel, "country", "description", "content")
	h.Address = domain.Address{
		Latitude:     digFloat(hotel, "coordinates", "latitude"),
		Longitude:    digFloat(hotel, "coordinates", "longitude"),
		AddressLine1: ptr(line1),
		City:         ptr(city),
		State:        digSP(hotel, "state", "name"),
		Country:      ptr(country),
		CountryCode:  ptr(countryCode),
		PostalCode:   ptr(postal),
		FullAddress:  ptr(joinNonEmpty(", ", line1, city, postal, country)),
		Mapping: domain.AddressMapping{
			CountryID: ptr(countryCode),
			StateID:   digSP(hotel, "stateCode"),
			AreaID:    digSP(hotel, "zoneCode"),
		},
	}

	for _, p := range digList(hotel, "phones") {
		num := digStr(p, "phoneNumber")
		if num == "" {
			continue
		}
		if digStr(p, "phoneType") == "FAXNUMBER" {
			h.Contacts.Fax = append(h.Contacts.Fax, num)
			continue
		}
		h.Contacts.PhoneNumbers = append(h.Contacts.PhoneNumbers, num)
	}
	if e := digStr(hotel, "email"); e != "" {
		h.Contacts.EmailAddress = append(h.Contacts.EmailAddress, e)
	}
	if w := digStr(hotel, "web"); w != "" {
		h.Contacts.Website = append(h.Contacts.Website, w)
	}

	addDescription(h, "Hotel Description", digStr(hotel, "description", "content"))

	for _, r := range digList(hotel, "rooms") {
		room := newRoom()
		room.RoomID = digSP(r, "roomCode")
		room.Title = ptr(firstNonEmpty(digStr(r, "type", "description", "content"), digStr(r, "description")))
		room.Description = digSP(r, "characteristic", "description", "content")
		room.MaxAllowed = domain.MaxAllowed{
			Total:    digSP(r, "maxPax"),
			Adults:   digSP(r, "maxAdults"),
			Children: digSP(r, "maxChildren"),
		}
		for _, f := range digList(r, "roomFacilities") {
			if t := digStr(f, "description", "content"); t != "" {
				room.Amenities = append(room.Amenities, t)
			}
		}
		h.RoomType = append(h.RoomType, room)
	}

	for _, f := range digList(hotel, "facilities") {
		addFacilities(h, digStr(f, "description", "content"))
	}

	for _, img := range digList(hotel, "images") {
		path := digStr(img, "path")
		if path == "" {
			continue
		}
		url := hotelbedsPhotoBase + path
		addPhoto(h, digStr(img, "order"), digStr(img, "type", "description", "content"), url)
		if h.PrimaryPhoto == nil && digStr(img, "imageTypeCode") == "GEN" {
			h.PrimaryPhoto = ptr(url)
		}
	}

	for _, p := range digList(hotel, "interestPoints") {
		h.PointOfInterests = append(h.PointOfInterests,
			placeAt(digStr(p, "facilityCode"), digStr(p, "poiName"), digStr(p, "distance")))
	}
	for _, t := range digList(hotel, "terminals") {
		h.NearestAirports = append(h.NearestAirports,
			placeAt(digStr(t, "terminalCode"), firstNonEmpty(digStr(t, "name", "content"), digStr(t, "description", "content")), digStr(t, "distance")))
	}
	return nil
}
