package consts

const (
	ThemeByNameKey    = "taxonomy:theme:name:"
	ThemeListKey      = "taxonomy:theme:list"
	RegionByNameKey   = "taxonomy:region:name:"
	RegionListKey     = "taxonomy:region:list"
	WardListKey       = "taxonomy:ward:list:"
	CategoryByNameKey = "taxonomy:category:name:"
	CategoryListKey   = "taxonomy:category:list"
	PlaceDirtyKey     = "place:dirty"
	PlaceMetrics7Key  = "place:metrics:7days:"
	PlaceMetrics30Key = "place:metrics:30days:"
	TokenBlacklistKey = "token:blacklist:"
)

const (
	ScoreReconcileLock = "lock:score:reconcile"
	PlaceImportLock    = "lock:place:import"
)
