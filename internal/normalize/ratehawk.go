package normalize

import (
	"strings"

	"hotel_content/internal/domain"
)

const ratehawkImageSize = "1024x768"

func mapRateHawk(raw any, h *domain.CanonicalHotel) error {
	m, err := object(domain.SupplierRateHawk, raw)
	if err != nil {
		return err
	}
	return mapRateHawkHotel(digMap(m, "data"), h)
}

// mapRateHawkNew handles the dump format, which has no data envelope.
func mapRateHawkNew(raw any, h *domain.CanonicalHotel) error {
	m, err := object(domain.SupplierRateHawkNew, raw)
	if err != nil {
		return err
	}
	return mapRateHawkHotel(m, h)
}

func ratehawkImage(url string) string {
	return strings.ReplaceAll(url, "{size}", ratehawkImageSize)
}

func mapRateHawkHotel(hotel map[string]any, h *domain.CanonicalHotel) error {
	if err := setID(h, dig(hotel, "id")); err != nil {
		return err
	}

	h.Name = digSP(hotel, "name")
	h.StarRating = cleanStar(dig(hotel, "star_rating"))
	h.PropertyType = digSP(hotel, "kind")
	h.Chain = digSP(hotel, "hotel_chain")
	h.DestinationCode = digSP(hotel, "region", "id")

	line1 := digStr(hotel, "address")
	cc := digStr(hotel, "region", "country_code")
	h.Address = domain.Address{
		Latitude:     digFloat(hotel, "latitude"),
		Longitude:    digFloat(hotel, "longitude"),
		AddressLine1: ptr(line1),
		City:         digSP(hotel, "region", "name"),
		CountryCode:  ptr(cc),
		PostalCode:   digSP(hotel, "postal_code"),
		FullAddress:  ptr(line1),
		Mapping: domain.AddressMapping{
			CityID:    digSP(hotel, "region", "id"),
			CountryID: ptr(cc),
		},
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(hotel, "phone"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(hotel, "email"))

	h.Policies.Checkin.BeginTime = digSP(hotel, "check_in_time")
	h.Policies.Checkout.Time = digSP(hotel, "check_out_time")
	h.Policies.Remark = sp(htmlText(digStr(hotel, "metapolicy_extra_info")))
	for _, p := range digList(hotel, "metapolicy_struct", "pets") {
		if pt := digStr(p, "pets_type"); pt != "" {
			h.Policies.Pets = ptr(joinNonEmpty(" ", pt, digStr(p, "inclusion")))
			break
		}
	}
	var know []string
	for _, ps := range digList(hotel, "policy_struct") {
		know = appendNonEmpty(know, stringsOf(digList(ps, "paragraphs"))...)
	}
	h.Policies.KnowBeforeYouGo = ptr(htmlText(strings.Join(know, " ")))

	for _, d := range digList(hotel, "description_struct") {
		addDescription(h, digStr(d, "title"), htmlText(strings.Join(stringsOf(digList(d, "paragraphs")), "\n")))
	}

	for _, g := range digList(hotel, "amenity_groups") {
		items := stringsOf(digList(g, "amenities"))
		if strings.EqualFold(digStr(g, "group_name"), "Languages Spoken") {
			addLanguages(h, items...)
			continue
		}
		if strings.EqualFold(digStr(g, "group_name"), "General") {
			addAmenities(h, items...)
		}
		addFacilities(h, items...)
	}

	for i, img := range digList(hotel, "images_ext") {
		url := ratehawkImage(digStr(img, "url"))
		addPhoto(h, str(i+1), digStr(img, "category_slug"), url)
		if h.PrimaryPhoto == nil && digStr(img, "category_slug") == "hotel_front" {
			h.PrimaryPhoto = ptr(url)
		}
	}
	if len(h.HotelPhoto) == 0 {
		for i, img := range digList(hotel, "images") {
			addPhoto(h, str(i+1), "", ratehawkImage(str(img)))
		}
	}

	for _, rg := range digList(hotel, "room_groups") {
		room := newRoom()
		room.RoomID = digSP(rg, "room_group_id")
		room.Title = ptr(firstNonEmpty(digStr(rg, "name_struct", "main_name"), digStr(rg, "name")))
		room.TitleLang = digSP(rg, "name")
		if pics := digList(rg, "images"); len(pics) > 0 {
			room.RoomPic = ptr(ratehawkImage(str(pics[0])))
		}
		room.MaxAllowed.Total = digSP(rg, "rg_ext", "capacity")
		if bt := digStr(rg, "name_struct", "bedding_type"); bt != "" {
			room.BedType = append(room.BedType, bed(bt, bt, "", ""))
		}
		room.Amenities = appendNonEmpty(room.Amenities, stringsOf(digList(rg, "room_amenities"))...)
		h.RoomType = append(h.RoomType, room)
	}
	return nil
}
