package models

// FunctionCategory is the business function a listing is classified into.
type FunctionCategory string

const (
	FunctionFinance     FunctionCategory = "finance"
	FunctionMarketing   FunctionCategory = "marketing"
	FunctionSales       FunctionCategory = "sales"
	FunctionProduct     FunctionCategory = "product"
	FunctionEngineering FunctionCategory = "engineering"
	FunctionOperations  FunctionCategory = "operations"
	FunctionPeople      FunctionCategory = "people"
	FunctionData        FunctionCategory = "data"
	FunctionLegal       FunctionCategory = "legal"
	FunctionOther       FunctionCategory = "other"
)

// SeniorityTier is the seniority level derived from a listing title.
type SeniorityTier string

const (
	SeniorityCLevel   SeniorityTier = "c_level"
	SeniorityEVP      SeniorityTier = "evp"
	SenioritySVP      SeniorityTier = "svp"
	SeniorityVP       SeniorityTier = "vp"
	SeniorityDirector SeniorityTier = "director"
	SeniorityHeadOf   SeniorityTier = "head_of"
	SeniorityUnknown  SeniorityTier = "unknown"
)

// LocationType describes where the work happens.
type LocationType string

const (
	LocationRemote LocationType = "remote"
	LocationHybrid LocationType = "hybrid"
	LocationOnsite LocationType = "onsite"
)

// LocationRestriction narrows who can apply for a remote listing.
type LocationRestriction string

const (
	RestrictionWorldwide     LocationRestriction = "worldwide"
	RestrictionUSAOnly       LocationRestriction = "usa_only"
	RestrictionStateSpecific LocationRestriction = "state_specific"
	RestrictionTimezone      LocationRestriction = "timezone"
	RestrictionCitySpecific  LocationRestriction = "city_specific"
)

// CompensationType is the pay structure advertised by a listing.
type CompensationType string

const (
	CompHourly       CompensationType = "hourly"
	CompMonthly      CompensationType = "monthly"
	CompAnnual       CompensationType = "annual"
	CompEquityOnly   CompensationType = "equity_only"
	CompNotDisclosed CompensationType = "not_disclosed"
)

// RunStatus tracks the lifecycle of one scrape run.
type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
	RunStatusPartial RunStatus = "partial"
)
