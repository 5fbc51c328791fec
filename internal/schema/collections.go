package schema

// collections.go registers every content collection of the site.
// Registration order is the import dependency order: a collection must be
// registered after every collection it references.

func init() {
	registerWars()
	registerSectors()
	registerVillages()
	registerActivityTypes()
	registerLocations()
	registerMartyrs()
	registerLegends()
	registerActivities()
	registerNews()
	Default.Validate()
}

// Common header aliases left behind by older hand-maintained sheets.
var (
	nameEnAliases = []string{"Name EN", "Name (English)", "English Name"}
	nameArAliases = []string{"Name AR", "Name (Arabic)", "Arabic Name"}
	descEnAliases = []string{"Description EN", "Description (English)"}
	descArAliases = []string{"Description AR", "Description (Arabic)"}
)

func registerWars() {
	Default.Register(CollectionDefinition{
		Key:       "wars",
		SheetName: "Wars",
		Fields: []FieldSpec{
			{Name: "nameEn", Aliases: nameEnAliases, Type: FieldText},
			{Name: "nameAr", Aliases: nameArAliases, Type: FieldText},
			{Name: "descriptionEn", Aliases: descEnAliases, Type: FieldText},
			{Name: "descriptionAr", Aliases: descArAliases, Type: FieldText},
			{Name: "startDate", Aliases: []string{"Start Date"}, Type: FieldDate},
			{Name: "endDate", Aliases: []string{"End Date"}, Type: FieldDate},
			{Name: "mainImage", Aliases: []string{"Main Image"}, Type: FieldText},
			{Name: "photos", Aliases: []string{"Photos"}, Type: FieldList},
			{Name: "videos", Aliases: []string{"Videos"}, Type: FieldList},
		},
		NaturalKey: []string{"nameEn", "nameAr"},
	})
}

func registerSectors() {
	Default.Register(CollectionDefinition{
		Key:       "sectors",
		SheetName: "Sectors",
		Fields: []FieldSpec{
			{Name: "nameEn", Aliases: nameEnAliases, Type: FieldText},
			{Name: "nameAr", Aliases: nameArAliases, Type: FieldText},
			{Name: "descriptionEn", Aliases: descEnAliases, Type: FieldText},
			{Name: "descriptionAr", Aliases: descArAliases, Type: FieldText},
		},
		NaturalKey: []string{"nameEn", "nameAr"},
	})
}

func registerVillages() {
	Default.Register(CollectionDefinition{
		Key:       "villages",
		SheetName: "Villages",
		Fields: []FieldSpec{
			{Name: "nameEn", Aliases: nameEnAliases, Type: FieldText},
			{Name: "nameAr", Aliases: nameArAliases, Type: FieldText},
			{Name: "descriptionEn", Aliases: descEnAliases, Type: FieldText},
			{Name: "descriptionAr", Aliases: descArAliases, Type: FieldText},
		},
		NaturalKey: []string{"nameEn", "nameAr"},
	})
}

func registerActivityTypes() {
	Default.Register(CollectionDefinition{
		Key:       "activityTypes",
		SheetName: "Activity Types",
		Fields: []FieldSpec{
			{Name: "nameEn", Aliases: nameEnAliases, Type: FieldText},
			{Name: "nameAr", Aliases: nameArAliases, Type: FieldText},
			{Name: "descriptionEn", Aliases: descEnAliases, Type: FieldText},
			{Name: "descriptionAr", Aliases: descArAliases, Type: FieldText},
		},
		NaturalKey: []string{"nameEn", "nameAr"},
	})
}

func registerLocations() {
	Default.Register(CollectionDefinition{
		Key:       "locations",
		SheetName: "Locations",
		Fields: []FieldSpec{
			{Name: "nameEn", Aliases: nameEnAliases, Type: FieldText},
			{Name: "nameAr", Aliases: nameArAliases, Type: FieldText},
			{Name: "descriptionEn", Aliases: descEnAliases, Type: FieldText},
			{Name: "descriptionAr", Aliases: descArAliases, Type: FieldText},
			// Coordinates are nullable: an empty cell means "unknown",
			// not the Gulf of Guinea.
			{Name: "latitude", Aliases: []string{"Latitude"}, Type: FieldNumber, Nullable: true},
			{Name: "longitude", Aliases: []string{"Longitude"}, Type: FieldNumber, Nullable: true},
			{Name: "mainImage", Aliases: []string{"Main Image"}, Type: FieldText},
			{Name: "photos", Aliases: []string{"Photos"}, Type: FieldList},
			{Name: "videos", Aliases: []string{"Videos"}, Type: FieldList},
			{Name: "sectorId", Aliases: []string{"Sector ID", "Sector"}, Type: FieldText,
				Relation: &Relation{Collection: "sectors", Field: "id", Label: "Sector"}},
		},
		NaturalKey: []string{"nameEn", "nameAr"},
	})
}

func registerMartyrs() {
	Default.Register(CollectionDefinition{
		Key:       "martyrs",
		SheetName: "Martyrs",
		Fields: []FieldSpec{
			{Name: "nameEn", Aliases: nameEnAliases, Type: FieldText},
			{Name: "nameAr", Aliases: nameArAliases, Type: FieldText},
			{Name: "jihadistNameEn", Aliases: []string{"Jihadist Name EN"}, Type: FieldText},
			{Name: "jihadistNameAr", Aliases: []string{"Jihadist Name AR"}, Type: FieldText},
			{Name: "dob", Aliases: []string{"Date of Birth", "DOB"}, Type: FieldDate},
			{Name: "dateOfShahada", Aliases: []string{"Date of Shahada", "Date of Martyrdom"}, Type: FieldDate},
			{Name: "familyStatus", Aliases: []string{"Family Status"}, Type: FieldText},
			{Name: "numberOfChildren", Aliases: []string{"Number of Children"}, Type: FieldNumber},
			{Name: "storyEn", Aliases: []string{"Story EN", "Story (English)"}, Type: FieldText},
			{Name: "storyAr", Aliases: []string{"Story AR", "Story (Arabic)"}, Type: FieldText},
			{Name: "mainIcon", Aliases: []string{"Main Icon"}, Type: FieldText},
			{Name: "photos", Aliases: []string{"Photos"}, Type: FieldList},
			{Name: "videos", Aliases: []string{"Videos"}, Type: FieldList},
			{Name: "warId", Aliases: []string{"War ID", "War"}, Type: FieldText,
				Relation: &Relation{Collection: "wars", Field: "id", Label: "War"}},
			{Name: "placeOfBirthId", Aliases: []string{"Place of Birth ID", "Place of Birth"}, Type: FieldText,
				Relation: &Relation{Collection: "villages", Field: "id", Label: "Place of Birth"}},
			{Name: "burialPlaceId", Aliases: []string{"Burial Place ID", "Burial Place"}, Type: FieldText,
				Relation: &Relation{Collection: "villages", Field: "id", Label: "Burial Place"}},
		},
		NaturalKey: []string{"nameEn", "nameAr"},
	})
}

func registerLegends() {
	Default.Register(CollectionDefinition{
		Key:       "legends",
		SheetName: "Legends",
		Fields: []FieldSpec{
			{Name: "nameEn", Aliases: nameEnAliases, Type: FieldText},
			{Name: "nameAr", Aliases: nameArAliases, Type: FieldText},
			{Name: "descriptionEn", Aliases: descEnAliases, Type: FieldText},
			{Name: "descriptionAr", Aliases: descArAliases, Type: FieldText},
			{Name: "mainImage", Aliases: []string{"Main Image"}, Type: FieldText},
			{Name: "photos", Aliases: []string{"Photos"}, Type: FieldList},
			{Name: "videos", Aliases: []string{"Videos"}, Type: FieldList},
		},
		NaturalKey: []string{"nameEn", "nameAr"},
	})
}

func registerActivities() {
	Default.Register(CollectionDefinition{
		Key:       "activities",
		SheetName: "Activities",
		Fields: []FieldSpec{
			{Name: "nameEn", Aliases: []string{"Name EN", "Name", "Title EN"}, Type: FieldText},
			{Name: "nameAr", Aliases: nameArAliases, Type: FieldText},
			{Name: "descriptionEn", Aliases: descEnAliases, Type: FieldText},
			{Name: "descriptionAr", Aliases: descArAliases, Type: FieldText},
			{Name: "date", Aliases: []string{"Date"}, Type: FieldDate},
			{Name: "time", Aliases: []string{"Time"}, Type: FieldText},
			{Name: "durationHours", Aliases: []string{"Duration (Hours)", "Duration Hours"}, Type: FieldNumber},
			{Name: "isActive", Aliases: []string{"Is Active", "Active"}, Type: FieldBool, Default: true},
			{Name: "isManuallyDeactivated", Aliases: []string{"Manually Deactivated"}, Type: FieldBool},
			{Name: "mainImage", Aliases: []string{"Main Image"}, Type: FieldText},
			{Name: "photos", Aliases: []string{"Photos"}, Type: FieldList},
			{Name: "videos", Aliases: []string{"Videos"}, Type: FieldList},
			{Name: "activityTypeId", Aliases: []string{"Activity Type ID", "Activity Type"}, Type: FieldText,
				Relation: &Relation{Collection: "activityTypes", Field: "id", Label: "Activity Type"}},
			{Name: "villageId", Aliases: []string{"Village ID", "Village"}, Type: FieldText,
				Relation: &Relation{Collection: "villages", Field: "id", Label: "Village"}},
		},
		// Activities recur under the same name; the scheduled date
		// disambiguates them.
		NaturalKey: []string{"nameEn", "date"},
	})
}

func registerNews() {
	Default.Register(CollectionDefinition{
		Key:       "news",
		SheetName: "News",
		Fields: []FieldSpec{
			{Name: "titleEn", Aliases: []string{"Title EN", "Title (English)"}, Type: FieldText},
			{Name: "titleAr", Aliases: []string{"Title AR", "Title (Arabic)"}, Type: FieldText},
			{Name: "descriptionEn", Aliases: descEnAliases, Type: FieldText},
			{Name: "descriptionAr", Aliases: descArAliases, Type: FieldText},
			{Name: "type", Aliases: []string{"Type"}, Type: FieldText},
			{Name: "publishDate", Aliases: []string{"Publish Date"}, Type: FieldDate},
			{Name: "publishTime", Aliases: []string{"Publish Time"}, Type: FieldText},
			{Name: "liveStartTime", Aliases: []string{"Live Start Time"}, Type: FieldText},
			{Name: "liveDurationHours", Aliases: []string{"Live Duration (Hours)"}, Type: FieldNumber},
			{Name: "mainImage", Aliases: []string{"Main Image"}, Type: FieldText},
			{Name: "photos", Aliases: []string{"Photos"}, Type: FieldList},
			{Name: "videos", Aliases: []string{"Videos"}, Type: FieldList},
		},
		NaturalKey: []string{"titleEn", "titleAr"},
	})
}
