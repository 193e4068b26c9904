package utils

// Message keys returned in the "message" field of every response.
const (
	MsgSuccess            = "SUCCESS"
	MsgEnterCorrectInput  = "ENTER_CORRECT_INPUT"
	MsgUserNotExist       = "USER_NOT_EXIST"
	MsgInvalidCredentials = "INVALID_CREDENTIALS"
	MsgLoginSuccessfully  = "LOGIN_SUCCESSFULLY"
	MsgUnauthorized       = "UNAUTHORIZED"
	MsgTooManyRequests    = "TOO_MANY_REQUESTS"
	MsgSomethingWentWrong = "SOMETHING_WENT_WRONG"
	MsgNotFound           = "NOT_FOUND"

	MsgInvalidFile          = "INVALID_FILE"
	MsgDataExtractionFailed = "DATA_EXTRACTION_FAILED"
	MsgNoDataFound          = "NO_DATA_FOUND"
	MsgInvalidRowData       = "INVALID_ROW_DATA"
	MsgMissingFields        = "MISSING_FIELDS"
	MsgDuplicateEmail       = "DUPLICATE_EMAIL"
	MsgUsersInserted        = "USERS_INSERTED"
	MsgFileProcessingFailed = "FILE_PROCESSING_FAILED"
)
