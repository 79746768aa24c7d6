package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/financy/backend/internal/domain/entity"
	"github.com/financy/backend/internal/integration/entrypoint/middleware"
	"github.com/financy/backend/test/integration/mock"
)

var placeholderPattern = regexp.MustCompile(`\{\{(user|account|purchase):([^}]+)\}\}`)

func registerSetupSteps(ctx *godog.ScenarioContext, t *TestContext) {
	ctx.Given(`^the API server is running$`, t.theAPIServerIsRunning)
	ctx.Given(`^today is "([^"]*)"$`, t.todayIs)
	ctx.Given(`^a user "([^"]*)" exists$`, t.aUserExists)
	ctx.Given(`^I have a session$`, t.iHaveASession)
	ctx.Given(`^I am logged in as "([^"]*)"$`, t.iAmLoggedInAs)
	ctx.Given(`^an account "([^"]*)" with closing day (\d+) and limit "([^"]*)" exists$`, t.anAccountExists)
	ctx.Given(`^the account "([^"]*)" is shared with "([^"]*)"$`, t.theAccountIsSharedWith)
	ctx.Given(`^a purchase "([^"]*)" of "([^"]*)" in (\d+) installments on "([^"]*)" exists in "([^"]*)"$`, t.aPurchaseExists)
	ctx.Given(`^a subscription "([^"]*)" of "([^"]*)" from "([^"]*)" to "([^"]*)" exists in "([^"]*)"$`, t.aSubscriptionExists)
	ctx.Given(`^the header is empty$`, t.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, t.theHeaderContainsTheKeyWith)
}

func registerRequestSteps(ctx *godog.ScenarioContext, t *TestContext) {
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, t.iSendARequestToWithBody)
}

func registerResponseSteps(ctx *godog.ScenarioContext, t *TestContext) {
	ctx.Then(`^the response status should be (\d+)$`, t.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, t.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, t.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, t.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, t.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response field "([^"]*)" should be the amount "([^"]*)"$`, t.theResponseFieldShouldBeTheAmount)
}

func registerStorageSteps(ctx *godog.ScenarioContext, t *TestContext) {
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, t.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, t.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^redis should hold (\d+) sessions$`, t.redisShouldHoldSessions)
}

func (t *TestContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return fmt.Errorf("test server is not running: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("expected healthy server, got status %d", resp.StatusCode)
	}
	return nil
}

func (t *TestContext) todayIs(date string) error {
	day, err := entity.ParseDate(date)
	if err != nil {
		return err
	}
	t.timeMock.SetCurrentTime(day.Add(12 * time.Hour))
	return nil
}

func (t *TestContext) aUserExists(name string) error {
	body, err := t.mustSend(http.MethodPost, "/api/v1/users", map[string]any{"firstName": name}, http.StatusCreated)
	if err != nil {
		return err
	}
	id, err := idOf(body)
	if err != nil {
		return err
	}
	t.users[name] = id
	return nil
}

func (t *TestContext) iHaveASession() error {
	saved := t.sessionID
	t.sessionID = ""
	body, err := t.mustSend(http.MethodPost, "/api/v1/sessions", nil, http.StatusCreated)
	if err != nil {
		t.sessionID = saved
		return err
	}
	id, ok := body["id"].(string)
	if !ok {
		return fmt.Errorf("session response has no id: %v", body)
	}
	t.sessionID = id
	return nil
}

func (t *TestContext) iAmLoggedInAs(name string) error {
	userID, ok := t.users[name]
	if !ok {
		return fmt.Errorf("unknown user %q", name)
	}
	if err := t.iHaveASession(); err != nil {
		return err
	}
	_, err := t.mustSend(http.MethodPost, "/api/v1/sessions/login/"+strconv.FormatUint(uint64(userID), 10), nil, http.StatusOK)
	return err
}

func (t *TestContext) anAccountExists(name string, closingDay int, limit string) error {
	body, err := t.mustSend(http.MethodPost, "/api/v1/accounts", map[string]any{
		"name":       name,
		"closingDay": closingDay,
		"limit":      limit,
	}, http.StatusCreated)
	if err != nil {
		return err
	}
	id, err := idOf(body)
	if err != nil {
		return err
	}
	t.accounts[name] = id
	return nil
}

func (t *TestContext) theAccountIsSharedWith(account, user string) error {
	userID, ok := t.users[user]
	if !ok {
		return fmt.Errorf("unknown user %q", user)
	}
	path := t.replacePlaceholders("/api/v1/accounts/{{account:" + account + "}}/share")
	_, err := t.mustSend(http.MethodPost, path, map[string]any{"userId": userID}, http.StatusOK)
	return err
}

func (t *TestContext) aPurchaseExists(name, value string, installments int, date, account string) error {
	return t.createPurchase(account, map[string]any{
		"name":         name,
		"date":         date,
		"type":         int(entity.PurchaseTypeOther),
		"value":        value,
		"installments": installments,
	})
}

func (t *TestContext) aSubscriptionExists(name, value, date, endDate, account string) error {
	return t.createPurchase(account, map[string]any{
		"name":    name,
		"date":    date,
		"type":    int(entity.PurchaseTypeSubscription),
		"value":   value,
		"endDate": endDate,
	})
}

func (t *TestContext) createPurchase(account string, payload map[string]any) error {
	path := t.replacePlaceholders("/api/v1/accounts/{{account:" + account + "}}/purchases")
	body, err := t.mustSend(http.MethodPost, path, payload, http.StatusCreated)
	if err != nil {
		return err
	}
	id, err := idOf(body)
	if err != nil {
		return err
	}
	t.purchases[payload["name"].(string)] = id
	return nil
}

func (t *TestContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.sessionID = ""
	return nil
}

func (t *TestContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *TestContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *TestContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

// replacePlaceholders swaps {{user:Name}}, {{account:Name}} and
// {{purchase:Name}} for the ids the setup steps recorded.
func (t *TestContext) replacePlaceholders(content string) string {
	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := placeholderPattern.FindStringSubmatch(match)
		var ids map[string]uint32
		switch parts[1] {
		case "user":
			ids = t.users
		case "account":
			ids = t.accounts
		case "purchase":
			ids = t.purchases
		}
		if id, ok := ids[parts[2]]; ok {
			return strconv.FormatUint(uint64(id), 10)
		}
		return match
	})
}

// mustSend issues a setup request and fails unless it answers with status.
func (t *TestContext) mustSend(method, path string, payload any, status int) (map[string]any, error) {
	var data []byte
	if payload != nil {
		var err error
		if data, err = json.Marshal(payload); err != nil {
			return nil, err
		}
	}
	if err := t.executeRequest(method, path, data); err != nil {
		return nil, err
	}
	if t.response.status != status {
		return nil, fmt.Errorf("%s %s: expected status %d, got %d. Body: %v", method, path, status, t.response.status, t.response.body)
	}
	body, _ := t.response.body.(map[string]any)
	return body, nil
}

func (t *TestContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.server.URL + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.sessionID != "" {
		req.Header.Set(middleware.SessionHeader, t.sessionID)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody
	}

	return nil
}

func idOf(body map[string]any) (uint32, error) {
	id, ok := body["id"].(float64)
	if !ok {
		return 0, fmt.Errorf("response has no numeric id: %v", body)
	}
	return uint32(id), nil
}

func (t *TestContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %v", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *TestContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not valid JSON: %v", t.response.body)
	}
	return nil
}

func (t *TestContext) theResponseShouldContain(expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	raw, _ := json.Marshal(t.response.body)
	if !strings.Contains(string(raw), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, raw)
	}
	return nil
}

func (t *TestContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, t.replacePlaceholders(field))
	if value == nil {
		return nil, fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return value, nil
}

func (t *TestContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *TestContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, value)
	}
	if len(items) != quantity {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, len(items))
	}
	return nil
}

// Amounts are encoded as decimal strings, so "100" and "100.00" match.
func (t *TestContext) theResponseFieldShouldBeTheAmount(field, expected string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	actual, err := decimal.NewFromString(fmt.Sprintf("%v", value))
	if err != nil {
		return fmt.Errorf("field '%s' is not an amount: %v", field, value)
	}
	want, err := decimal.NewFromString(expected)
	if err != nil {
		return err
	}
	if !actual.Equal(want) {
		return fmt.Errorf("field '%s' expected amount %s, got %s", field, want, actual)
	}
	return nil
}

func (t *TestContext) modelSlice(table string) (reflect.Value, error) {
	model, ok := t.db.GetModel(table)
	if !ok {
		return reflect.Value{}, fmt.Errorf("table '%s' not found in models", table)
	}
	entityType := reflect.TypeOf(model).Elem()
	entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
	entitySlicePtr := reflect.New(entitySlice.Type())
	entitySlicePtr.Elem().Set(entitySlice)
	return entitySlicePtr, nil
}

func (t *TestContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entitySlicePtr, err := t.modelSlice(table)
	if err != nil {
		return err
	}

	if err := t.db.DbConn.Find(entitySlicePtr.Interface()).Error; err != nil {
		return err
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *TestContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	entitySlicePtr, err := t.modelSlice(table)
	if err != nil {
		return err
	}

	query := t.db.DbConn
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *TestContext) redisShouldHoldSessions(quantity int) error {
	count, err := mock.CountKeys(t.redis, "financy:session:*")
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d sessions in redis, got %d", quantity, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
