package normalize

import (
	"strings"

	"hotel_content/internal/domain"
)

// eanProperty finds the property object. Rapid content responses are keyed
// by property id; a bare property object is accepted as well.
func eanProperty(m map[string]any) map[string]any {
	if _, ok := m["property_id"]; ok {
		return m
	}
	for _, k := range sortedKeys(m) {
		if p := digMap(m, k); p != nil && dig(p, "property_id") != nil {
			return p
		}
	}
	return nil
}

// eanNames returns the "name" of every entry of an id-keyed map, in id order.
func eanNames(v any) []string {
	mm, _ := v.(map[string]any)
	var out []string
	for _, k := range sortedKeys(mm) {
		out = appendNonEmpty(out, digStr(mm[k], "name"))
	}
	return out
}

func mapEAN(raw any, h *domain.CanonicalHotel) error {
	m, err := object(domain.SupplierEAN, raw)
	if err != nil {
		return err
	}
	p := eanProperty(m)
	if err := setID(h, dig(p, "property_id")); err != nil {
		return err
	}

	h.Name = digSP(p, "name")
	h.PropertyType = digSP(p, "category", "name")
	h.Chain = digSP(p, "chain", "name")
	h.Brand = digSP(p, "brand", "name")
	h.StarRating = cleanStar(dig(p, "ratings", "property", "rating"))
	h.ReviewRating = domain.ReviewRating{
		Source:          ptr("Expedia"),
		NumberOfReviews: digSP(p, "ratings", "guest", "count"),
		RatingAverage:   digSP(p, "ratings", "guest", "overall"),
	}

	a := digMap(p, "address")
	line1 := digStr(a, "line_1")
	line2 := digStr(a, "line_2")
	city := digStr(a, "city")
	postal := digStr(a, "postal_code")
	cc := digStr(a, "country_code")
	h.Address = domain.Address{
		Latitude:     digFloat(p, "location", "coordinates", "latitude"),
		Longitude:    digFloat(p, "location", "coordinates", "longitude"),
		AddressLine1: ptr(line1),
		AddressLine2: ptr(line2),
		City:         ptr(city),
		State:        ptr(firstNonEmpty(digStr(a, "state_province_name"), digStr(a, "state_province_code"))),
		CountryCode:  ptr(cc),
		PostalCode:   ptr(postal),
		FullAddress:  ptr(joinNonEmpty(", ", line1, line2, city, digStr(a, "state_province_code"), postal, cc)),
		Mapping: domain.AddressMapping{
			CountryID: ptr(cc),
			StateID:   digSP(a, "state_province_code"),
		},
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(p, "phone"))
	h.Contacts.Fax = appendNonEmpty(h.Contacts.Fax, digStr(p, "fax"))

	ci := digMap(p, "checkin")
	h.Policies.Checkin = domain.Checkin{
		BeginTime:    digSP(ci, "begin_time"),
		EndTime:      digSP(ci, "end_time"),
		Instructions: sp(htmlText(joinNonEmpty(" ", digStr(ci, "instructions"), digStr(ci, "special_instructions")))),
		MinAge:       digSP(ci, "min_age"),
	}
	h.Policies.Checkout.Time = digSP(p, "checkout", "time")
	h.Policies.Fees = domain.Fees{
		Optional:  sp(htmlText(digStr(p, "fees", "optional"))),
		Mandatory: sp(htmlText(digStr(p, "fees", "mandatory"))),
	}
	h.Policies.KnowBeforeYouGo = sp(htmlText(digStr(p, "policies", "know_before_you_go")))
	if pets := eanNames(dig(p, "attributes", "pets")); len(pets) > 0 {
		h.Policies.Pets = ptr(strings.Join(pets, ", "))
	}

	descs := digMap(p, "descriptions")
	for _, k := range []string{"headline", "general", "location", "amenities", "dining", "rooms", "attractions", "business_amenities", "renovations", "national_ratings"} {
		addDescription(h, k, htmlText(digStr(descs, k)))
	}

	addLanguages(h, eanNames(dig(p, "spoken_languages"))...)
	addAmenities(h, eanNames(dig(p, "amenities"))...)
	addFacilities(h, eanNames(dig(p, "attributes", "general"))...)

	for _, img := range digList(p, "images") {
		url := firstNonEmpty(digStr(img, "links", "1000px", "href"), digStr(img, "links", "350px", "href"), digStr(img, "links", "70px", "href"))
		addPhoto(h, digStr(img, "category"), digStr(img, "caption"), url)
		if h.PrimaryPhoto == nil && digStr(img, "hero_image") == "true" {
			h.PrimaryPhoto = ptr(url)
		}
	}

	rooms := digMap(p, "rooms")
	for _, rk := range sortedKeys(rooms) {
		r := rooms[rk]
		room := newRoom()
		room.RoomID = ptr(firstNonEmpty(digStr(r, "id"), rk))
		room.Title = digSP(r, "name")
		room.Description = sp(htmlText(digStr(r, "descriptions", "overview")))
		room.RoomSize = digSP(r, "area", "square_meters")
		room.MaxAllowed = domain.MaxAllowed{
			Total:    digSP(r, "occupancy", "max_allowed", "total"),
			Adults:   digSP(r, "occupancy", "max_allowed", "adults"),
			Children: digSP(r, "occupancy", "max_allowed", "children"),
		}
		if imgs := digList(r, "images"); len(imgs) > 0 {
			room.RoomPic = ptr(firstNonEmpty(digStr(imgs[0], "links", "1000px", "href"), digStr(imgs[0], "links", "350px", "href")))
		}
		groups := digMap(r, "bed_groups")
		for _, gk := range sortedKeys(groups) {
			g := groups[gk]
			bt := domain.BedType{Description: digSP(g, "description"), Configuration: []domain.BedConfiguration{}}
			for _, c := range digList(g, "configuration") {
				bt.Configuration = append(bt.Configuration, domain.BedConfiguration{
					Type:     digSP(c, "type"),
					Size:     digSP(c, "size"),
					Quantity: digSP(c, "quantity"),
				})
			}
			room.BedType = append(room.BedType, bt)
		}
		room.Amenities = appendNonEmpty(room.Amenities, eanNames(dig(r, "amenities"))...)
		h.RoomType = append(h.RoomType, room)
	}
	return nil
}
