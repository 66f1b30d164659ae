package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"MediHub360/httperr"
	"MediHub360/role"

	jwt "github.com/KanapuramVaishnavi/Core/config/jwt"
	common "github.com/KanapuramVaishnavi/Core/coreServices"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const maxLoginAttempts = 3

// Swappable for tests, same pattern as the store variables.
var (
	generateOTP = func(data map[string]interface{}) (string, error) {
		return common.GenerateAndHashOTP(data)
	}
	sendMail = func(to, subject, body string) error {
		return common.SendOTPToMail(to, subject, body)
	}
	generateToken = func(code, email, roleCode, collection string) (string, error) {
		return jwt.GenerateJWT(code, email, roleCode, collection, "", false)
	}
)

/*
* Collect every missing signup field and report them together
 */
func validateSignupInput(data map[string]interface{}) error {
	missing := []string{}
	for _, f := range []string{"name", "email", "phoneNo", "password"} {
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
	data["email"] = strings.ToLower(data["email"].(string))
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Error hashing password:", err)
		return "", err
	}
	return string(hash), nil
}

/*
* Validate input and make sure the email is free
* Hash the password, stash the hashed OTP on the document
* Persist the user and mail the verification OTP
 */
func Signup(c *gin.Context, data map[string]interface{}) (map[string]interface{}, error) {
	if err := validateSignupInput(data); err != nil {
		return nil, err
	}

	roleName := role.Patient
	if raw, exists := data["role"]; exists {
		r, _ := raw.(string)
		r = strings.ToUpper(strings.TrimSpace(r))
		if !role.IsValid(r) {
			return nil, httperr.BadRequest("invalid-role", "role must be one of the supported roles")
		}
		if r == role.Admin {
			return nil, httperr.Forbidden("role-not-allowed", "ADMIN accounts cannot be self-registered")
		}
		roleName = r
	}

	email := data["email"].(string)
	if _, err := findDoc(c, UserCollection, bson.M{"email": email}); err == nil {
		return nil, httperr.Conflict("email-taken", "an account already exists for this email")
	} else if !isNotFound(err) {
		log.Println("Error checking for existing user:", err)
		return nil, err
	}

	hashed, err := hashPassword(data["password"].(string))
	if err != nil {
		return nil, err
	}

	otpFields := map[string]interface{}{}
	otp, err := generateOTP(otpFields)
	if err != nil {
		log.Println("Error from GenerateAndHashOTP:", err)
		return nil, err
	}

	code, err := generateCode(UserCollection)
	if err != nil {
		log.Println("Error generating user code:", err)
		return nil, err
	}

	user := map[string]interface{}{
		"code":            code,
		"name":            data["name"],
		"email":           email,
		"phoneNo":         data["phoneNo"],
		"password":        hashed,
		"role":            roleName,
		"status":          role.StatusActive,
		"isEmailVerified": false,
		"loginAttempts":   0,
		"createdAt":       time.Now(),
		"createdBy":       code,
		"updatedAt":       time.Now(),
		"updatedBy":       code,
	}
	for k, v := range otpFields {
		user[k] = v
	}

	if err := insertDoc(c, UserCollection, user); err != nil {
		if isDuplicateKey(err) {
			return nil, httperr.Conflict("email-taken", "an account already exists for this email")
		}
		log.Println("Error inserting user:", err)
		return nil, err
	}

	subject := "Your MediHub Verification Code"
	body := "Hello " + data["name"].(string) + ",\n\nYour verification code is: " + otp + "\n\nThank you!"
	if err := sendMail(email, subject, body); err != nil {
		log.Println("OTP email failed:", err)
		return nil, errors.New("failed to send verification mail")
	}

	return map[string]interface{}{
		"code":  code,
		"email": email,
		"role":  roleName,
	}, nil
}

/*
* Check the otpExpiry stored on the user, the driver round-trips it
* either as primitive.DateTime or time.Time
 */
func validateOTPExpiry(user map[string]interface{}) error {
	raw, ok := user["otpExpiry"]
	if !ok {
		return httperr.BadRequest("otp-missing", "no pending verification for this account")
	}
	var expiry time.Time
	switch v := raw.(type) {
	case primitive.DateTime:
		expiry = v.Time()
	case time.Time:
		expiry = v
	default:
		return httperr.BadRequest("otp-missing", "no pending verification for this account")
	}
	if time.Now().After(expiry) {
		return httperr.BadRequest("otp-expired", "the verification code expired, request a new one")
	}
	return nil
}

/*
* Compare the submitted OTP against the stored bcrypt hash
* On success flip isEmailVerified and clear the OTP fields
 */
func VerifyEmail(c *gin.Context, data map[string]interface{}) (string, error) {
	email, _ := data["email"].(string)
	otp, _ := data["otp"].(string)
	if strings.TrimSpace(email) == "" || strings.TrimSpace(otp) == "" {
		return "", httperr.BadRequest("missing-fields", "email is required; otp is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	filter := bson.M{"email": email}
	user, err := findDoc(c, UserCollection, filter)
	if err != nil {
		if isNotFound(err) {
			return "", httperr.NotFound("user-missing", "no account found for this email")
		}
		log.Println("Error fetching user for verification:", err)
		return "", err
	}
	if verified, _ := user["isEmailVerified"].(bool); verified {
		return "Already verified", nil
	}
	if err := validateOTPExpiry(user); err != nil {
		return "", err
	}
	storedHash, _ := user["otp"].(string)
	if storedHash == "" || bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(otp)) != nil {
		return "", httperr.BadRequest("otp-mismatch", "the verification code is incorrect")
	}

	update := bson.M{
		"$set":   bson.M{"isEmailVerified": true, "updatedAt": time.Now()},
		"$unset": bson.M{"otp": "", "otpExpiry": ""},
	}
	if _, err := updateDoc(c, UserCollection, filter, update); err != nil {
		log.Println("Error marking email verified:", err)
		return "", err
	}
	return "Email verified", nil
}

/*
* Wrong passwords count against the account, three suspends it
 */
func registerFailedAttempt(c *gin.Context, user map[string]interface{}) error {
	attempts := 1
	switch v := user["loginAttempts"].(type) {
	case int:
		attempts = v + 1
	case int32:
		attempts = int(v) + 1
	case int64:
		attempts = int(v) + 1
	case float64:
		attempts = int(v) + 1
	}
	set := bson.M{"loginAttempts": attempts, "updatedAt": time.Now()}
	if attempts >= maxLoginAttempts {
		set["status"] = role.StatusSuspended
	}
	filter := bson.M{"code": user["code"]}
	if _, err := updateDoc(c, UserCollection, filter, bson.M{"$set": set}); err != nil {
		log.Println("Error recording failed login attempt:", err)
		return err
	}
	if attempts >= maxLoginAttempts {
		return httperr.Forbidden("account-suspended", "too many failed attempts, the account is suspended")
	}
	return httperr.Unauthorized("invalid-credentials", "email or password is incorrect")
}

/*
* Resolve the account, refuse inactive/suspended/unverified ones
* Verify the password and track failed attempts
* Hand back a JWT carrying code, email and role
 */
func Login(c *gin.Context, data map[string]interface{}) (map[string]interface{}, error) {
	email, _ := data["email"].(string)
	password, _ := data["password"].(string)
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, httperr.BadRequest("missing-fields", "email is required; password is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := findDoc(c, UserCollection, bson.M{"email": email})
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.Unauthorized("invalid-credentials", "email or password is incorrect")
		}
		log.Println("Error fetching user for login:", err)
		return nil, err
	}

	status, _ := user["status"].(string)
	if status == role.StatusSuspended {
		return nil, httperr.Forbidden("account-suspended", "this account is suspended")
	}
	if status == role.StatusInactive {
		return nil, httperr.Forbidden("account-disabled", "this account is deactivated")
	}

	storedPassword, _ := user["password"].(string)
	if storedPassword == "" || bcrypt.CompareHashAndPassword([]byte(storedPassword), []byte(password)) != nil {
		return nil, registerFailedAttempt(c, user)
	}

	if verified, _ := user["isEmailVerified"].(bool); !verified {
		return nil, httperr.Forbidden("email-not-verified", "verify your email before logging in")
	}

	code, _ := user["code"].(string)
	roleName, _ := user["role"].(string)
	token, err := generateToken(code, email, roleName, roleName)
	if err != nil {
		log.Println("Error while generating the token:", err)
		return nil, err
	}

	filter := bson.M{"code": code}
	if _, err := updateDoc(c, UserCollection, filter, bson.M{"$set": bson.M{"loginAttempts": 0}}); err != nil {
		log.Println("Error resetting login attempts:", err)
	}

	return map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"code":  code,
			"name":  user["name"],
			"email": email,
			"role":  roleName,
		},
	}, nil
}

/*
* Public bootstrap for the first administrator account
* Created verified, no OTP round trip
 */
func CreateAdmin(c *gin.Context, data map[string]interface{}) (map[string]interface{}, error) {
	if err := validateSignupInput(data); err != nil {
		return nil, err
	}
	email := data["email"].(string)
	if _, err := findDoc(c, UserCollection, bson.M{"email": email}); err == nil {
		return nil, httperr.Conflict("email-taken", "an account already exists for this email")
	} else if !isNotFound(err) {
		log.Println("Error checking for existing admin:", err)
		return nil, err
	}

	hashed, err := hashPassword(data["password"].(string))
	if err != nil {
		return nil, err
	}
	code, err := generateCode(UserCollection)
	if err != nil {
		log.Println("Error generating admin code:", err)
		return nil, err
	}

	user := map[string]interface{}{
		"code":            code,
		"name":            data["name"],
		"email":           email,
		"phoneNo":         data["phoneNo"],
		"password":        hashed,
		"role":            role.Admin,
		"status":          role.StatusActive,
		"isEmailVerified": true,
		"loginAttempts":   0,
		"createdAt":       time.Now(),
		"createdBy":       code,
		"updatedAt":       time.Now(),
		"updatedBy":       code,
	}
	if err := insertDoc(c, UserCollection, user); err != nil {
		if isDuplicateKey(err) {
			return nil, httperr.Conflict("email-taken", "an account already exists for this email")
		}
		log.Println("Error inserting admin:", err)
		return nil, err
	}
	return map[string]interface{}{"code": code, "email": email, "role": role.Admin}, nil
}
