package constants

const (
	ROLE_ADMIN   = "admin"
	ROLE_STUDENT = "student"
)

const (
	NOT_FOUND_RECORDS          = "Record not found"
	ERROR_INPUT                = "Invalid input"
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_PARSE_DATA_TO_LOCALS = "Cannot read validated input"
	DATA_INPUT_IS_NOT_NUMBER   = "Parameter must be a number"
	CAN_NOT_HASH_PASSWORD      = "Cannot hash password"
	MISSING_LOGIN_INPUT        = "Email and password are required"
	INVALID_EMAIL              = "Email does not exist"
	INVALID_PASSWORD           = "Wrong password"
	EMAIL_ALREADY_USED         = "Email already registered"
	PERMISSION_DENIED          = "Permission denied"

	ALREADY_ALLOCATED    = "You already have an active room allocation"
	ROOM_UNAVAILABLE     = "This room was just taken"
	ALREADY_RELEASED     = "Allocation already released"
	STORE_UNAVAILABLE    = "Storage temporarily unavailable, please retry"
	NO_ACTIVE_ALLOCATION = "No active room allocation"
	ROOM_HAS_OCCUPANT    = "Room still has an active allocation"
	STUDENT_HAS_ROOM     = "Student still holds an active allocation"
)

const (
	MAINTENANCE_PENDING     = "pending"
	MAINTENANCE_IN_PROGRESS = "in_progress"
	MAINTENANCE_RESOLVED    = "resolved"
)

const (
	MEAL_ORDER_PLACED    = "placed"
	MEAL_ORDER_CANCELLED = "cancelled"
)

// Redis channel carrying room availability changes for the websocket feed.
const ROOM_AVAILABILITY_CHANNEL = "rooms:availability"
