package normalize

import "hotel_content/internal/domain"

// rakutenSection finds the single-key section named key inside the hotel
// list of {"hotelBasicInfo": {...}}, {"hotelDetailInfo": {...}} entries.
func rakutenSection(sections []any, key string) map[string]any {
	for _, s := range sections {
		if v := digMap(s, key); v != nil {
			return v
		}
	}
	return nil
}

func mapRakuten(raw any, h *domain.CanonicalHotel) error {
	m, err := object(domain.SupplierRakuten, raw)
	if err != nil {
		return err
	}
	sections := digList(m, "hotels", 0, "hotel")
	basic := rakutenSection(sections, "hotelBasicInfo")
	if err := setID(h, dig(basic, "hotelNo")); err != nil {
		return err
	}
	rating := rakutenSection(sections, "hotelRatingInfo")
	detail := rakutenSection(sections, "hotelDetailInfo")
	facilities := rakutenSection(sections, "hotelFacilitiesInfo")
	policy := rakutenSection(sections, "hotelPolicyInfo")

	h.Name = digSP(basic, "hotelName")
	h.NameLocal = digSP(basic, "hotelKanaName")
	h.DestinationCode = digSP(detail, "middleClassCode")
	h.CountryCode = ptr("JP")
	h.PrimaryPhoto = digSP(basic, "hotelImageUrl")
	h.Logo = digSP(basic, "hotelThumbnailUrl")

	line1 := digStr(basic, "address1")
	line2 := digStr(basic, "address2")
	postal := digStr(basic, "postalCode")
	h.Address = domain.Address{
		Latitude:     digFloat(basic, "latitude"),
		Longitude:    digFloat(basic, "longitude"),
		AddressLine1: ptr(line1),
		AddressLine2: ptr(line2),
		City:         digSP(detail, "areaName"),
		State:        ptr(line1),
		Country:      ptr("Japan"),
		CountryCode:  ptr("JP"),
		PostalCode:   ptr(postal),
		FullAddress:  ptr(joinNonEmpty(" ", postal, line1, line2)),
		Mapping: domain.AddressMapping{
			CountryID:  ptr("japan"),
			ProvinceID: digSP(detail, "middleClassCode"),
			CityID:     digSP(detail, "smallClassCode"),
			AreaID:     digSP(detail, "detailClassCode"),
		},
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers,
		digStr(basic, "telephoneNo"), digStr(detail, "reserveTelephoneNo"))
	h.Contacts.Fax = appendNonEmpty(h.Contacts.Fax, digStr(basic, "faxNo"))
	h.Contacts.Website = appendNonEmpty(h.Contacts.Website, digStr(basic, "hotelInformationUrl"))

	h.ReviewRating = domain.ReviewRating{
		Source:          ptr("Rakuten Travel"),
		NumberOfReviews: digSP(basic, "reviewCount"),
		RatingAverage:   ptr(firstNonEmpty(digStr(basic, "reviewAverage"), digStr(rating, "serviceAverage"))),
	}

	h.Policies.Checkin.BeginTime = digSP(detail, "checkinTime")
	h.Policies.Checkin.EndTime = digSP(detail, "lastCheckinTime")
	h.Policies.Checkout.Time = digSP(detail, "checkoutTime")
	h.Policies.Remark = digSP(policy, "note")
	h.Policies.KnowBeforeYouGo = digSP(policy, "cancelPolicy")

	addDescription(h, "Hotel Special", digStr(basic, "hotelSpecial"))
	addDescription(h, "Access", digStr(basic, "access"))
	addDescription(h, "Parking", digStr(basic, "parkingInformation"))
	addDescription(h, "Leisure", digStr(facilities, "aboutLeisure"))
	addDescription(h, "Bath", digStr(facilities, "aboutBath"))

	for _, f := range digList(facilities, "hotelFacilities") {
		addFacilities(h, firstNonEmpty(digStr(f, "item"), str(f)))
	}
	for _, f := range digList(facilities, "roomFacilities") {
		addAmenities(h, firstNonEmpty(digStr(f, "item"), str(f)))
	}

	addPhoto(h, "hotel", "Hotel", digStr(basic, "hotelImageUrl"))
	addPhoto(h, "room", "Room", digStr(basic, "roomImageUrl"))

	if n := digStr(facilities, "hotelRoomNum"); n != "" {
		room := newRoom()
		room.Title = ptr("Standard")
		room.NoOfRoom = ptr(n)
		room.RoomPic = digSP(basic, "roomImageUrl")
		h.RoomType = append(h.RoomType, room)
	}

	if st := digStr(basic, "nearestStation"); st != "" {
		h.TrainStations = append(h.TrainStations, place("", st))
	}
	return nil
}
