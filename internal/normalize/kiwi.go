package normalize

import "hotel_content/internal/domain"

// nodes flattens a {edges: [{node: ...}]} connection.
func nodes(v any) []any {
	var out []any
	for _, e := range digList(v, "edges") {
		if n := dig(e, "node"); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func mapKiwi(raw any, h *domain.CanonicalHotel) error {
	m, err := object(domain.SupplierKiwi, raw)
	if err != nil {
		return err
	}
	hotel := digMap(m, "data", "hotel")
	if err := setID(h, dig(hotel, "id")); err != nil {
		return err
	}

	h.Name = digSP(hotel, "name")
	h.StarRating = cleanStar(dig(hotel, "rating", "stars"))
	h.PropertyType = digSP(hotel, "type")
	h.ReviewRating = domain.ReviewRating{
		Source:          ptr("Kiwi"),
		NumberOfReviews: digSP(hotel, "reviewSummary", "count"),
		RatingAverage:   digSP(hotel, "reviewSummary", "score"),
	}

	addr := digMap(hotel, "address")
	line1 := digStr(addr, "street")
	city := digStr(addr, "city", "name")
	country := digStr(addr, "country", "name")
	h.DestinationCode = digSP(addr, "city", "id")
	h.Address = domain.Address{
		Latitude:     digFloat(hotel, "location", "lat"),
		Longitude:    digFloat(hotel, "location", "lng"),
		AddressLine1: ptr(line1),
		City:         ptr(city),
		Country:      ptr(country),
		CountryCode:  digSP(addr, "country", "code"),
		PostalCode:   digSP(addr, "zip"),
		FullAddress:  ptr(joinNonEmpty(", ", line1, city, digStr(addr, "zip"), country)),
		Mapping: domain.AddressMapping{
			CityID:    digSP(addr, "city", "id"),
			CountryID: digSP(addr, "country", "code"),
		},
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(hotel, "phone"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(hotel, "email"))

	h.Policies.Checkin.BeginTime = digSP(hotel, "checkIn", "from")
	h.Policies.Checkin.EndTime = digSP(hotel, "checkIn", "until")
	h.Policies.Checkout.Time = digSP(hotel, "checkOut", "until")

	addDescription(h, "Hotel Description", htmlText(digStr(hotel, "description")))

	for _, n := range nodes(dig(hotel, "languages")) {
		addLanguages(h, digStr(n, "name"))
	}
	for _, n := range nodes(dig(hotel, "amenities")) {
		if digStr(n, "category") == "ROOM" {
			addAmenities(h, digStr(n, "name"))
			continue
		}
		addFacilities(h, digStr(n, "name"))
	}
	for _, n := range nodes(dig(hotel, "photos")) {
		addPhoto(h, digStr(n, "id"), digStr(n, "caption"), digStr(n, "url"))
	}
	for _, n := range nodes(dig(hotel, "rooms")) {
		room := newRoom()
		room.RoomID = digSP(n, "id")
		room.Title = digSP(n, "name")
		room.Description = sp(htmlText(digStr(n, "description")))
		room.MaxAllowed.Total = digSP(n, "maxOccupancy")
		for _, b := range nodes(dig(n, "beds")) {
			room.BedType = append(room.BedType, bed(digStr(b, "type"), digStr(b, "type"), "", digStr(b, "count")))
		}
		for _, a := range nodes(dig(n, "amenities")) {
			room.Amenities = appendNonEmpty(room.Amenities, digStr(a, "name"))
		}
		h.RoomType = append(h.RoomType, room)
	}
	return nil
}
