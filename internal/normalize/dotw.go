package normalize

import "hotel_content/internal/domain"

// dotwMapper resolves city, country and rating from the DOTW side table
// since the hotel payload carries only codes for them.
type dotwMapper struct{ refs References }

func (d dotwMapper) Map(raw any, h *domain.CanonicalHotel) error {
	m, err := xmlObject(domain.SupplierDOTW, raw)
	if err != nil {
		return err
	}
	root := getOr(m, m, "result")
	hotel := dig(root, "hotels", "hotel", 0)
	if err := setID(h, dig(hotel, "@hotelid")); err != nil {
		return err
	}

	geo, _, err := d.refs.DOTW(h.HotelID)
	if err != nil {
		return err
	}

	h.Name = digSP(hotel, "hotelName")
	h.StarRating = ptr(geo.StarRating)
	h.CountryCode = ptr(geo.CountryCode)
	h.DestinationCode = digSP(hotel, "locationId")
	h.Chain = digSP(hotel, "chain")
	h.PropertyType = digSP(hotel, "hotelPropertyType")

	line1 := firstNonEmpty(digStr(hotel, "fullAddress", "hotelStreetAddress"), digStr(hotel, "address"))
	postal := firstNonEmpty(digStr(hotel, "fullAddress", "hotelZipCode"), digStr(hotel, "zipCode"))
	h.Address = domain.Address{
		Latitude:     digFloat(hotel, "geoPoint", "lat"),
		Longitude:    digFloat(hotel, "geoPoint", "lng"),
		AddressLine1: ptr(line1),
		City:         ptr(geo.City),
		State:        digSP(hotel, "fullAddress", "hotelState"),
		Country:      ptr(geo.Country),
		CountryCode:  ptr(geo.CountryCode),
		PostalCode:   ptr(postal),
		FullAddress:  ptr(joinNonEmpty(", ", line1, geo.City, postal, geo.Country)),
		Mapping: domain.AddressMapping{
			CityID:    digSP(hotel, "cityCode"),
			CountryID: digSP(hotel, "countryCode"),
			AreaID:    digSP(hotel, "locationId"),
		},
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(hotel, "hotelPhone"))
	h.Contacts.Fax = appendNonEmpty(h.Contacts.Fax, digStr(hotel, "hotelFax"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(hotel, "hotelEmail"))

	h.Policies.Checkin.BeginTime = digSP(hotel, "hotelCheckIn")
	h.Policies.Checkout.Time = digSP(hotel, "hotelCheckOut")
	h.Policies.Checkin.MinAge = digSP(hotel, "minAge")

	for _, key := range []string{"description1", "description2"} {
		addDescription(h, digStr(hotel, key, "language", "@name"), htmlText(digStr(hotel, key, "language")))
	}

	for _, a := range digList(hotel, "amenitie", "language", "amenitieItem") {
		addAmenities(h, str(a))
	}
	for _, key := range [][2]string{{"leisure", "leisureItem"}, {"business", "businessItem"}} {
		for _, f := range digList(hotel, key[0], "language", key[1]) {
			addFacilities(h, str(f))
		}
	}

	for _, img := range digList(hotel, "images", "hotelImages", "image") {
		addPhoto(h, digStr(img, "@runno"), digStr(img, "title"), digStr(img, "url"))
	}
	h.PrimaryPhoto = digSP(hotel, "images", "hotelImages", "thumb")

	for _, r := range digList(hotel, "rooms", "room") {
		for _, rt := range digList(r, "roomType") {
			room := newRoom()
			room.RoomID = digSP(rt, "@roomtypecode")
			room.Title = digSP(rt, "name")
			room.MaxAllowed = domain.MaxAllowed{
				Total:    digSP(rt, "roomInfo", "maxOccupancy"),
				Adults:   digSP(rt, "roomInfo", "maxAdultWithChildren"),
				Children: digSP(rt, "roomInfo", "maxChildren"),
			}
			room.Amenities = appendNonEmpty(room.Amenities, stringsOf(digList(rt, "roomAmenities", "amenity"))...)
			if twin := digStr(rt, "twin"); twin != "" {
				room.BedType = append(room.BedType, bed("twin: "+twin, "", "", ""))
			}
			h.RoomType = append(h.RoomType, room)
		}
	}

	for _, a := range digList(hotel, "transportation", "airports", "airport") {
		h.NearestAirports = append(h.NearestAirports,
			placeAt(digStr(a, "code"), digStr(a, "name"), digStr(a, "dist")))
	}
	for _, r := range digList(hotel, "transportation", "rails", "rail") {
		h.TrainStations = append(h.TrainStations,
			placeAt("", digStr(r, "name"), digStr(r, "dist")))
	}
	for _, g := range digList(hotel, "geoLocations", "geoLocation") {
		h.PointOfInterests = append(h.PointOfInterests,
			placeAt(digStr(g, "@id"), digStr(g, "name"), digStr(g, "distance")))
	}
	return nil
}
