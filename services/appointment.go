package services

import (
	"log"
	"strconv"
	"strings"
	"time"

	"MediHub360/httperr"
	"MediHub360/role"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	StatusScheduled  = "SCHEDULED"
	StatusConfirmed  = "CONFIRMED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
	StatusNoShow     = "NO_SHOW"
)

const (
	TypeConsultation = "CONSULTATION"
	TypeFollowUp     = "FOLLOW_UP"
	TypeCheckUp      = "CHECK_UP"
	TypeEmergency    = "EMERGENCY"
	TypeRoutine      = "ROUTINE"
)

const DefaultDuration = 30

const dateLayout = "2006-01-02"
const timeLayout = "15:04"

var appointmentStatuses = []string{
	StatusScheduled, StatusConfirmed, StatusInProgress,
	StatusCompleted, StatusCancelled, StatusNoShow,
}

var appointmentTypes = []string{
	TypeConsultation, TypeFollowUp, TypeCheckUp, TypeEmergency, TypeRoutine,
}

func isValidStatus(status string) bool {
	for _, s := range appointmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func isValidType(t string) bool {
	for _, v := range appointmentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// slotOccupying reports whether an appointment in this state holds its slot.
func slotOccupying(status string, isActive bool) bool {
	return isActive && status != StatusCancelled && status != StatusNoShow
}

func slotKey(doctorId, date, timeOfDay string) string {
	return doctorId + "|" + date + "|" + timeOfDay
}

/*
* Collect every missing required field and report them together
 */
func validateBookingInput(data map[string]interface{}) error {
	missing := []string{}
	for _, f := range []string{"doctorId", "appointmentDate", "appointmentTime", "reason"} {
		v, ok := data[f].(string)
		if !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, f+" is required")
			continue
		}
		data[f] = strings.TrimSpace(v)
	}
	if len(missing) > 0 {
		return httperr.BadRequest("missing-fields", strings.Join(missing, "; "))
	}
	return nil
}

/*
* Date must parse to a real calendar date and must not be before today
* The comparison is date-only, time of day never matters
 */
func validateAppointmentDate(dateGiven string) error {
	parsed, err := time.Parse(dateLayout, dateGiven)
	if err != nil {
		return httperr.BadRequest("invalid-date", "appointmentDate must be a valid YYYY-MM-DD date")
	}
	today, _ := time.Parse(dateLayout, time.Now().Format(dateLayout))
	if parsed.Before(today) {
		return httperr.BadRequest("date-in-past", "appointmentDate cannot be before today")
	}
	return nil
}

func validateAppointmentTime(timeGiven string) error {
	if _, err := time.Parse(timeLayout, timeGiven); err != nil {
		return httperr.BadRequest("invalid-time", "appointmentTime must be a valid HH:MM time")
	}
	return nil
}

/*
* Duration arrives as a JSON number, accept whole positive minutes only
 */
func resolveDuration(data map[string]interface{}) (int, error) {
	raw, exists := data["duration"]
	if !exists || raw == nil {
		return DefaultDuration, nil
	}
	switch v := raw.(type) {
	case float64:
		if v > 0 && v == float64(int(v)) {
			return int(v), nil
		}
	case int:
		if v > 0 {
			return v, nil
		}
	case int32:
		if v > 0 {
			return int(v), nil
		}
	case int64:
		if v > 0 {
			return int(v), nil
		}
	}
	return 0, httperr.BadRequest("invalid-duration", "duration must be a positive number of minutes")
}

/*
* Any appointment holding the same doctor/date/time slot blocks the booking
* Cancelled, no-show and soft-deleted rows never block
 */
func checkSlotConflict(c *gin.Context, doctorId, date, timeOfDay, excludeCode string) error {
	filter := bson.M{
		"doctorId":        doctorId,
		"appointmentDate": date,
		"appointmentTime": timeOfDay,
		"status":          bson.M{"$nin": []string{StatusCancelled, StatusNoShow}},
		"isActive":        true,
	}
	if excludeCode != "" {
		filter["code"] = bson.M{"$ne": excludeCode}
	}
	_, err := findDoc(c, AppointmentCollection, filter)
	if err == nil {
		return httperr.Conflict("slot-taken", "this slot is already booked for the doctor")
	}
	if !isNotFound(err) {
		log.Println("Error from slot conflict check:", err)
		return err
	}
	return nil
}

/*
* Resolve the patient the booking is for
* Patients book for themselves; staff pass a patientId in the body
 */
func resolveBookingPatient(c *gin.Context, actingCode, actingRole string, data map[string]interface{}) (map[string]interface{}, error) {
	if actingRole == role.Admin || actingRole == role.Receptionist {
		patientId, _ := data["patientId"].(string)
		if strings.TrimSpace(patientId) == "" {
			return nil, httperr.BadRequest("missing-fields", "patientId is required")
		}
		patient, err := findDoc(c, PatientCollection, bson.M{"code": strings.TrimSpace(patientId), "isActive": true})
		if err != nil {
			if isNotFound(err) {
				return nil, httperr.NotFound("profile-missing", "no patient profile found for patientId")
			}
			log.Println("Error fetching patient for staff booking:", err)
			return nil, err
		}
		return patient, nil
	}
	return resolveActingPatient(c, actingCode)
}

/*
* Resolve the acting user's patient profile, then the doctor
* Validate the date, reject past dates, check the slot for conflicts
* Validate type and duration, then persist SCHEDULED with the slot key
* A racing insert loses at the unique slot index and surfaces the same conflict
* Respond with patient and doctor display fields denormalized
 */
func BookAppointment(c *gin.Context, data map[string]interface{}) (map[string]interface{}, error) {
	actingCode := c.GetString("code")
	actingRole := c.GetString("collection")

	if err := validateBookingInput(data); err != nil {
		return nil, err
	}

	patient, err := resolveBookingPatient(c, actingCode, actingRole, data)
	if err != nil {
		return nil, err
	}

	doctorId := data["doctorId"].(string)
	doctor, err := findDoc(c, DoctorCollection, bson.M{"code": doctorId, "isActive": true})
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("doctor-missing", "no doctor found for doctorId")
		}
		log.Println("Error fetching doctor:", err)
		return nil, err
	}

	dateGiven := data["appointmentDate"].(string)
	if err := validateAppointmentDate(dateGiven); err != nil {
		return nil, err
	}
	timeGiven := data["appointmentTime"].(string)
	if err := validateAppointmentTime(timeGiven); err != nil {
		return nil, err
	}

	if err := checkSlotConflict(c, doctorId, dateGiven, timeGiven, ""); err != nil {
		return nil, err
	}

	appointmentType := TypeConsultation
	if raw, exists := data["type"]; exists {
		t, _ := raw.(string)
		if !isValidType(t) {
			return nil, httperr.BadRequest("invalid-type", "type must be one of "+strings.Join(appointmentTypes, ", "))
		}
		appointmentType = t
	}

	duration, err := resolveDuration(data)
	if err != nil {
		return nil, err
	}

	code, err := generateCode(AppointmentCollection)
	if err != nil {
		log.Println("Error generating appointment code:", err)
		return nil, err
	}

	appointment := map[string]interface{}{
		"code":            code,
		"patientId":       patient["code"],
		"doctorId":        doctorId,
		"appointmentDate": dateGiven,
		"appointmentTime": timeGiven,
		"duration":        duration,
		"type":            appointmentType,
		"status":          StatusScheduled,
		"reason":          data["reason"],
		"symptoms":        data["symptoms"],
		"notes":           data["notes"],
		"slotKey":         slotKey(doctorId, dateGiven, timeGiven),
		"isActive":        true,
		"createdAt":       time.Now(),
		"createdBy":       actingCode,
		"updatedAt":       time.Now(),
		"updatedBy":       actingCode,
	}
	if err := insertDoc(c, AppointmentCollection, appointment); err != nil {
		if isDuplicateKey(err) {
			return nil, httperr.Conflict("slot-taken", "this slot is already booked for the doctor")
		}
		log.Println("Error inserting appointment:", err)
		return nil, err
	}

	key := AppointmentKey + code
	if err := cachePut(c, key, appointment); err != nil {
		log.Println("Failed caching new appointment:", err)
	}

	return withDisplayFields(appointment, patient, doctor), nil
}

// slotKey is index plumbing, it never leaves the store.
func redactSlotKey(doc map[string]interface{}) map[string]interface{} {
	delete(doc, "slotKey")
	return doc
}

/*
* Read convenience only, the stored document never carries these
 */
func withDisplayFields(appointment, patient, doctor map[string]interface{}) map[string]interface{} {
	projection := make(map[string]interface{}, len(appointment)+2)
	for k, v := range appointment {
		projection[k] = v
	}
	delete(projection, "slotKey")
	projection["patient"] = map[string]interface{}{
		"code": patient["code"],
		"name": patient["name"],
	}
	doctorView := map[string]interface{}{
		"code": doctor["code"],
		"name": doctor["name"],
	}
	if profile, ok := doctor["profile"].(map[string]interface{}); ok {
		doctorView["specialization"] = profile["specialization"]
		doctorView["department"] = profile["department"]
		doctorView["consultationFee"] = profile["consultationFee"]
	}
	projection["doctor"] = doctorView
	return projection
}

/*
* Check the cache first, fall back to the collection
* The access check always runs, cached or not
 */
func FetchAppointmentByCode(c *gin.Context, appointmentId string) (map[string]interface{}, error) {
	actingCode := c.GetString("code")
	actingRole := c.GetString("collection")

	key := AppointmentKey + appointmentId
	cached := make(map[string]interface{})
	if exists, err := cacheFetch(c, key, &cached); err == nil && exists {
		if err := CheckAppointmentAccess(c, actingCode, actingRole, cached); err != nil {
			return nil, err
		}
		return redactSlotKey(cached), nil
	}

	appointment, err := findDoc(c, AppointmentCollection, bson.M{"code": appointmentId})
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("appointment-missing", "no appointment found for this id")
		}
		log.Println("Error fetching appointment:", err)
		return nil, err
	}
	if err := CheckAppointmentAccess(c, actingCode, actingRole, appointment); err != nil {
		return nil, err
	}
	if err := cachePut(c, key, appointment); err != nil {
		log.Println("Failed caching appointment:", err)
	}
	return redactSlotKey(appointment), nil
}

/*
* Keep only the fields the caller's role may write, drop the rest silently
 */
func scopeUpdateFields(actingRole string, data map[string]interface{}) map[string]interface{} {
	scoped := make(map[string]interface{})
	for field, value := range data {
		if role.CanWriteField(actingRole, field) {
			scoped[field] = value
		}
	}
	return scoped
}

/*
* Validate whatever scoped fields are present
* Membership checks only for status, no transition table is enforced
 */
func validateScopedUpdate(c *gin.Context, scoped map[string]interface{}) error {
	if raw, exists := scoped["status"]; exists {
		s, _ := raw.(string)
		if !isValidStatus(s) {
			return httperr.BadRequest("invalid-status", "status must be one of "+strings.Join(appointmentStatuses, ", "))
		}
	}
	if raw, exists := scoped["type"]; exists {
		t, _ := raw.(string)
		if !isValidType(t) {
			return httperr.BadRequest("invalid-type", "type must be one of "+strings.Join(appointmentTypes, ", "))
		}
	}
	if raw, exists := scoped["appointmentDate"]; exists {
		d, _ := raw.(string)
		if err := validateAppointmentDate(d); err != nil {
			return err
		}
	}
	if raw, exists := scoped["appointmentTime"]; exists {
		t, _ := raw.(string)
		if err := validateAppointmentTime(t); err != nil {
			return err
		}
	}
	if _, exists := scoped["duration"]; exists {
		duration, err := resolveDuration(scoped)
		if err != nil {
			return err
		}
		scoped["duration"] = duration
	}
	if raw, exists := scoped["doctor"]; exists {
		doctorId, _ := raw.(string)
		if _, err := findDoc(c, DoctorCollection, bson.M{"code": doctorId, "isActive": true}); err != nil {
			if isNotFound(err) {
				return httperr.NotFound("doctor-missing", "no doctor found for doctorId")
			}
			log.Println("Error resolving reassigned doctor:", err)
			return err
		}
		// Stored under doctorId; "doctor" is the wire name staff send.
		scoped["doctorId"] = doctorId
		delete(scoped, "doctor")
	}
	return nil
}

/*
* Fetch the appointment and run the access check
* Scope the payload to the caller's writable fields, validate what remains
* Recompute the slot key when the slot tuple or the occupancy changes
* Replaying the same payload lands on the same end state
 */
func UpdateAppointmentByCode(c *gin.Context, appointmentId string, data map[string]interface{}) (map[string]interface{}, error) {
	actingCode := c.GetString("code")
	actingRole := c.GetString("collection")

	filter := bson.M{"code": appointmentId}
	appointment, err := findDoc(c, AppointmentCollection, filter)
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("appointment-missing", "no appointment found for this id")
		}
		log.Println("Error fetching appointment for update:", err)
		return nil, err
	}
	if err := CheckAppointmentAccess(c, actingCode, actingRole, appointment); err != nil {
		return nil, err
	}

	scoped := scopeUpdateFields(actingRole, data)
	if len(scoped) == 0 {
		return redactSlotKey(appointment), nil
	}
	if err := validateScopedUpdate(c, scoped); err != nil {
		return nil, err
	}

	doctorId := stringOr(scoped["doctorId"], appointment["doctorId"])
	dateGiven := stringOr(scoped["appointmentDate"], appointment["appointmentDate"])
	timeGiven := stringOr(scoped["appointmentTime"], appointment["appointmentTime"])
	status := stringOr(scoped["status"], appointment["status"])
	isActive, _ := appointment["isActive"].(bool)

	unset := bson.M{}
	if slotOccupying(status, isActive) {
		newKey := slotKey(doctorId, dateGiven, timeGiven)
		if currentKey, _ := appointment["slotKey"].(string); currentKey != newKey {
			if err := checkSlotConflict(c, doctorId, dateGiven, timeGiven, appointmentId); err != nil {
				return nil, err
			}
		}
		scoped["slotKey"] = newKey
	} else {
		unset["slotKey"] = ""
	}

	scoped["updatedAt"] = time.Now()
	scoped["updatedBy"] = actingCode
	update := bson.M{"$set": scoped}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if _, err := updateDoc(c, AppointmentCollection, filter, update); err != nil {
		if isDuplicateKey(err) {
			return nil, httperr.Conflict("slot-taken", "this slot is already booked for the doctor")
		}
		log.Println("Error updating appointment:", err)
		return nil, err
	}

	updated, err := findDoc(c, AppointmentCollection, filter)
	if err != nil {
		log.Println("Error fetching appointment after update:", err)
		return nil, err
	}
	key := AppointmentKey + appointmentId
	if err := cacheDrop(c, key); err != nil {
		log.Println("Failed deleting old appointment cache:", err)
	}
	if err := cachePut(c, key, updated); err != nil {
		log.Println("Failed caching updated appointment:", err)
	}
	return redactSlotKey(updated), nil
}

func stringOr(raw, fallback interface{}) string {
	if s, ok := raw.(string); ok && s != "" {
		return s
	}
	s, _ := fallback.(string)
	return s
}

/*
* Always a soft delete: CANCELLED, inactive, slot released
* ADMIN and RECEPTIONIST skip the access check outright
 */
func CancelAppointmentByCode(c *gin.Context, appointmentId string) (map[string]interface{}, error) {
	actingCode := c.GetString("code")
	actingRole := c.GetString("collection")

	filter := bson.M{"code": appointmentId}
	appointment, err := findDoc(c, AppointmentCollection, filter)
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("appointment-missing", "no appointment found for this id")
		}
		log.Println("Error fetching appointment for cancel:", err)
		return nil, err
	}
	if actingRole != role.Admin && actingRole != role.Receptionist {
		if err := CheckAppointmentAccess(c, actingCode, actingRole, appointment); err != nil {
			return nil, err
		}
	}

	update := bson.M{
		"$set": bson.M{
			"status":    StatusCancelled,
			"isActive":  false,
			"updatedAt": time.Now(),
			"updatedBy": actingCode,
		},
		"$unset": bson.M{"slotKey": ""},
	}
	if _, err := updateDoc(c, AppointmentCollection, filter, update); err != nil {
		log.Println("Error cancelling appointment:", err)
		return nil, err
	}

	cancelled, err := findDoc(c, AppointmentCollection, filter)
	if err != nil {
		log.Println("Error fetching appointment after cancel:", err)
		return nil, err
	}
	if err := cacheDrop(c, AppointmentKey+appointmentId); err != nil {
		log.Println("Failed deleting cancelled appointment cache:", err)
	}
	return redactSlotKey(cancelled), nil
}

/*
* Scope the listing to the caller, then apply the optional filters
* Soft-deleted rows never show up here
 */
func FetchAllAppointments(c *gin.Context) (map[string]interface{}, error) {
	actingCode := c.GetString("code")
	actingRole := c.GetString("collection")

	filter := bson.M{"isActive": true}
	switch actingRole {
	case role.Admin, role.Receptionist:
		// unrestricted listing

	case role.Doctor:
		doctor, err := findDoc(c, DoctorCollection, bson.M{"user": actingCode})
		if err != nil {
			if isNotFound(err) {
				return nil, httperr.NotFound("profile-missing", "no doctor profile found for this user")
			}
			log.Println("Error resolving doctor profile for listing:", err)
			return nil, err
		}
		filter["doctorId"] = doctor["code"]

	case role.Patient:
		patient, err := resolveActingPatient(c, actingCode)
		if err != nil {
			return nil, err
		}
		filter["patientId"] = patient["code"]

	case role.Pharmacist:
		filter["pharmacist"] = actingCode

	default:
		log.Println("This user does not have access to list appointments")
		return nil, errNoAccess
	}

	if status := c.Query("status"); status != "" {
		if !isValidStatus(status) {
			return nil, httperr.BadRequest("invalid-status", "status must be one of "+strings.Join(appointmentStatuses, ", "))
		}
		filter["status"] = status
	}
	if appointmentType := c.Query("type"); appointmentType != "" {
		if !isValidType(appointmentType) {
			return nil, httperr.BadRequest("invalid-type", "type must be one of "+strings.Join(appointmentTypes, ", "))
		}
		filter["type"] = appointmentType
	}
	if date := c.Query("date"); date != "" {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return nil, httperr.BadRequest("invalid-date", "date must be a valid YYYY-MM-DD date")
		}
		filter["appointmentDate"] = date
	}

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), 10)
	if limit > 100 {
		limit = 100
	}

	total, err := countDocs(c, AppointmentCollection, filter)
	if err != nil {
		log.Println("Error counting appointments:", err)
		return nil, err
	}
	sort := bson.D{{Key: "appointmentDate", Value: 1}, {Key: "appointmentTime", Value: 1}}
	appointments, err := findPage(c, AppointmentCollection, filter, sort, page, limit)
	if err != nil {
		log.Println("Error listing appointments:", err)
		return nil, err
	}
	for _, appointment := range appointments {
		redactSlotKey(appointment)
	}

	return map[string]interface{}{
		"appointments": appointments,
		"total":        total,
		"page":         page,
		"limit":        limit,
	}, nil
}

func parsePositiveInt(raw string, fallback int64) int64 {
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
