package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// Clients map these codes to their own messages.

const (
	// ==================== Breweries (BREWERY_) ====================
	BreweryNotFound = "BREWERY_NOT_FOUND" // no brewery matches name/identifier
	BreweryExists   = "BREWERY_EXISTS"    // brewery name already taken
	BreweryHasBeers = "BREWERY_HAS_BEERS" // delete rejected while beers reference it

	// ==================== Beers (BEER_) ====================
	BeerNotFound   = "BEER_NOT_FOUND"   // no beer matches name/identifier
	BeerExists     = "BEER_EXISTS"      // beer name already taken
	BeerHasReviews = "BEER_HAS_REVIEWS" // delete rejected while reviews reference it

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound     = "REVIEW_NOT_FOUND"     // no review matches identifier
	ReviewDuplicate    = "REVIEW_DUPLICATE"     // user already reviewed this beer
	ReviewInvalidScore = "REVIEW_INVALID_SCORE" // score outside (0, 10]

	// ==================== Queries (QUERY_) ====================
	QueryInvalidOrderBy    = "QUERY_INVALID_ORDERBY"    // orderby names no sortable column
	QueryInvalidOrder      = "QUERY_INVALID_ORDER"      // order is not asc/desc
	QueryInvalidOffset     = "QUERY_INVALID_OFFSET"     // offset negative or not a number
	QueryInvalidLimit      = "QUERY_INVALID_LIMIT"      // limit not a number
	QueryMissingIdentifier = "QUERY_MISSING_IDENTIFIER" // neither name nor identifier given

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // request body failed binding
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // identifier is not a UUID

	// ==================== Uploads (UPLOAD_) ====================
	UploadNoFile = "UPLOAD_NO_FILE" // no file in multipart form
	UploadFailed = "UPLOAD_FAILED"  // storage backend write failed

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unclassified failure
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // store failure
)
