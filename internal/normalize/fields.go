package normalize

// Canonical English field names shared by the parsers, the stored listing
// documents and the API. These match what the frontend already reads, so
// renaming any of them is a breaking change.
const (
	FieldPropertyType     = "Property Type"
	FieldSalePrice        = "Sale Price"
	FieldRentalPrice      = "Rental Price"
	FieldLocation         = "Property Location"
	FieldStructure        = "Building - Structure"
	FieldConstructionDate = "Building - Construction Date"
	FieldBuildingArea     = "Building - Area"
	FieldLayout           = "Building - Layout"
	FieldLandArea         = "Land - Area"
	FieldTransportation   = "Transportation"
	FieldReferenceURL     = "Reference URL"
)

// tableFields maps the row headers of sumai-style detail tables to
// canonical field names.
var tableFields = map[string]string{
	"物件種別":           FieldPropertyType,
	"売買価格":           FieldSalePrice,
	"賃貸価格":           FieldRentalPrice,
	"物件所在地":          FieldLocation,
	"建物-構造":          FieldStructure,
	"建物-築年月":         FieldConstructionDate,
	"建物-面積":          FieldBuildingArea,
	"建物-間取":          FieldLayout,
	"土地-面積":          FieldLandArea,
	"土地-地目":          "Land - Land Use",
	"土地-用途地域":        "Land - Zoning",
	"土地-都市計画":        "Land - Urban Planning",
	"土地-接道":          "Land - Road Access",
	"土地-権利":          "Land - Title",
	"駐車場":            "Parking",
	"交通":             FieldTransportation,
	"生活環境":           "Living Environment",
	"設備-電気":          "Utilities - Electricity",
	"設備-給湯":          "Utilities - Hot Water",
	"設備-水道":          "Utilities - Water Supply",
	"設備-排水":          "Utilities - Drainage",
	"設備-トイレ":         "Utilities - Toilet",
	"増築・リフォーム歴":      "Renovation History",
	"補修必要程度":         "Repair Needs",
	"補修費負担":          "Repair Cost Responsibility",
	"補修必要内容":         "Repair Details",
	"利用状況":           "Usage Status",
	"付帯物件・その他":       "Other Property Features",
	"管理費・自治会費・税金等":   "Management Fees, Local Dues, Taxes, etc.",
	"敷金・礼金・仲介手数料等":   "Deposit, Key Money, Agent Fees, etc.",
	"特記事項":           "Special Notes",
	"備考":             "Remarks",
	"参照URL":          FieldReferenceURL,
	"物件番号":           "Property ID",
	"取引態様":           "Transaction Type",
	"事業者名":           "Business Name",
	"事業者所在地":         "Business Address",
	"事業者連絡先":         "Business Contact",
	"掲載日":            "Listing Date",
	"掲載期限":           "Listing Expiry",
	"直通メールフォーム":      "Direct Contact Form",
}

// propertyTypes maps the property-type badges used on listing cards.
var propertyTypes = map[string]string{
	"新築一戸建て":  "Newly Constructed Detached House",
	"中古一戸建て":  "Used Detached House",
	"土地・売地":   "Land for Sale",
	"新築マンション": "Newly Constructed Apartments",
	"中古マンション": "Used Apartments",
}

// areaLabels maps the compact spec badges shown on search-result cards.
var areaLabels = map[string]string{
	"土地面積":  FieldLandArea,
	"建ぺい率":  "Building Coverage Ratio",
	"容積率":   "Volume Ratio",
	"間取り":   FieldLayout,
	"建物面積":  FieldBuildingArea,
	"築年月":   FieldConstructionDate,
	"階建":    FieldStructure,
	"専有面積":  FieldBuildingArea,
	"所在階":   "Building - Location Floor",
}

// TableFieldName resolves a Japanese detail-table header to its canonical
// field name. Unknown headers return ok=false and the listing keeps going
// without that field.
func TableFieldName(jp string) (string, bool) {
	name, ok := tableFields[jp]
	return name, ok
}

// PropertyTypeName resolves a Japanese property-type badge.
func PropertyTypeName(jp string) (string, bool) {
	name, ok := propertyTypes[jp]
	return name, ok
}

// AreaLabelName resolves a Japanese search-card spec badge.
func AreaLabelName(jp string) (string, bool) {
	name, ok := areaLabels[jp]
	return name, ok
}
