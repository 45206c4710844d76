package domain

const (
	SupplierHotelbeds            = "hotelbeds"
	SupplierPaximum              = "paximum"
	SupplierStuba                = "stuba"
	SupplierDOTW                 = "dotw"
	SupplierAmadeus              = "amadeushotel"
	SupplierRoomerang            = "roomerang"
	SupplierRakuten              = "rakuten"
	SupplierIllusions            = "illusionshotel"
	SupplierHotelston            = "hotelston"
	SupplierLetsfly              = "letsfly"
	SupplierGoGlobal             = "goglobal"
	SupplierGoGlobalMainSupplier = "goglobal_main_supplier"
	SupplierJuniper              = "juniperhotel"
	SupplierInnstant             = "innstant"
	SupplierRestel               = "restel"
	SupplierRateHawk             = "ratehawkhotel"
	SupplierRateHawkNew          = "ratehawk_new"
	SupplierAgoda                = "agoda"
	SupplierTBO                  = "tbohotel"
	SupplierEAN                  = "ean"
	SupplierGRNConnect           = "grnconnect"
	SupplierHyperGuest           = "hyperguestdirect"
	SupplierRNR                  = "rnrhotel"
	SupplierIRIX                 = "irixhotel"
	SupplierKiwi                 = "kiwihotel"
	SupplierOryx                 = "oryxhotel"
)

// Suppliers is the closed set of supplier codes the service understands.
var Suppliers = []string{
	SupplierHotelbeds,
	SupplierPaximum,
	SupplierStuba,
	SupplierDOTW,
	SupplierAmadeus,
	SupplierRoomerang,
	SupplierRakuten,
	SupplierIllusions,
	SupplierHotelston,
	SupplierLetsfly,
	SupplierGoGlobal,
	SupplierGoGlobalMainSupplier,
	SupplierJuniper,
	SupplierInnstant,
	SupplierRestel,
	SupplierRateHawk,
	SupplierRateHawkNew,
	SupplierAgoda,
	SupplierTBO,
	SupplierEAN,
	SupplierGRNConnect,
	SupplierHyperGuest,
	SupplierRNR,
	SupplierIRIX,
	SupplierKiwi,
	SupplierOryx,
}

// KnownSupplier reports whether code is in the closed supplier set.
func KnownSupplier(code string) bool {
	for _, s := range Suppliers {
		if s == code {
			return true
		}
	}
	return false
}
