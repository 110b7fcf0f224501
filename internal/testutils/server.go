package testutils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// FakeAPI is an in-process stand-in for the super-admin backend, serving the
// same envelope shapes the real API does. Tests mutate its exported fields
// to stage fixtures and failure modes.
type FakeAPI struct {
	mutex sync.Mutex

	// Expected bearer token; empty disables the auth check.
	Token string

	Stores            map[int64]map[string]any
	Permissions       map[int64][]map[string]any
	GlobalPermissions []map[string]any
	Invoices          map[int64]map[string]any
	Templates         map[int64][]map[string]any
	Dashboard         map[string]any

	// FailNextWith makes the next write endpoint answer success=false with
	// this message, then resets itself.
	FailNextWith string

	// SaveGate, when non-nil, blocks the features and permissions PUT
	// handlers until the channel is closed. Lets tests hold a save in
	// flight.
	SaveGate chan struct{}

	FeatureSaves    int
	PermissionSaves int

	nextStoreID    int64
	nextInvoiceID  int64
	nextTemplateID int64
}

func NewFakeAPI() *FakeAPI {
	return &FakeAPI{
		Stores:      make(map[int64]map[string]any),
		Permissions: make(map[int64][]map[string]any),
		Invoices:    make(map[int64]map[string]any),
		Templates:   make(map[int64][]map[string]any),
		Dashboard: map[string]any{
			"summary":      map[string]any{},
			"top_products": []any{},
			"stores":       []any{},
		},
		nextStoreID:    100,
		nextInvoiceID:  500,
		nextTemplateID: 900,
	}
}

// Start serves the fake API for the duration of the test.
func (f *FakeAPI) Start(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(f.Router())
	t.Cleanup(server.Close)
	return server
}

// SeedStore registers a store record and returns its id.
func (f *FakeAPI) SeedStore(record map[string]any) int64 {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.nextStoreID++
	id := f.nextStoreID
	record["store_id"] = id
	f.Stores[id] = record
	return id
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message, "data": nil})
}

// failNext consumes a staged failure, answering it when present.
func (f *FakeAPI) failNext(c *gin.Context) bool {
	f.mutex.Lock()
	message := f.FailNextWith
	f.FailNextWith = ""
	f.mutex.Unlock()
	if message == "" {
		return false
	}
	fail(c, http.StatusBadRequest, message)
	return true
}

func (f *FakeAPI) authorized(c *gin.Context) bool {
	if f.Token == "" {
		return true
	}
	if c.GetHeader("Authorization") != "Bearer "+f.Token {
		fail(c, http.StatusUnauthorized, "unauthorized")
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (f *FakeAPI) Router() *gin.Engine {
	router := gin.New()
	router.Use(requestIDMiddleware())
	admin := router.Group("/api/v1/super-admin")
	admin.Use(func(c *gin.Context) {
		if c.FullPath() != "/api/v1/super-admin/auth/login" && !f.authorized(c) {
			c.Abort()
		}
	})

	admin.POST("/auth/login", f.handleLogin)
	admin.GET("/dashboard", f.handleDashboard)

	admin.GET("/stores", f.handleListStores)
	admin.POST("/stores", f.handleCreateStore)
	admin.GET("/stores/:id", f.handleGetStore)
	admin.DELETE("/stores/:id", f.handleDeleteStore)
	admin.PUT("/stores/:id/features", f.handleUpdateFeatures)

	admin.GET("/permissions", f.handleGlobalPermissions)
	admin.GET("/permissions/store/:id", f.handleStorePermissions)
	admin.PUT("/permissions/store/:id", f.handleUpdatePermissions)

	admin.GET("/billing/invoices", f.handleListInvoices)
	admin.POST("/billing/invoices", f.handleCreateInvoice)
	admin.GET("/billing/invoices/:id", f.handleGetInvoice)
	admin.PUT("/billing/invoices/:id/payment", f.handleUpdatePayment)

	admin.GET("/stores/:id/notification-templates", f.handleListTemplates)
	admin.POST("/stores/:id/notification-templates", f.handleCreateTemplate)
	admin.PUT("/stores/:id/notification-templates/:templateId", f.handleUpdateTemplate)
	admin.DELETE("/stores/:id/notification-templates/:templateId", f.handleDeleteTemplate)

	return router
}

func (f *FakeAPI) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if f.failNext(c) {
		return
	}
	token := f.Token
	if token == "" {
		token = "fake-token"
	}
	ok(c, gin.H{
		"token": token,
		"admin": gin.H{"name": "Test Admin", "email": req.Email},
	})
}

func (f *FakeAPI) handleDashboard(c *gin.Context) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	ok(c, f.Dashboard)
}

func (f *FakeAPI) handleListStores(c *gin.Context) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	stores := make([]map[string]any, 0, len(f.Stores))
	for _, record := range f.Stores {
		stores = append(stores, record)
	}
	ok(c, stores)
}

func (f *FakeAPI) handleGetStore(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	f.mutex.Lock()
	record, found := f.Stores[id]
	f.mutex.Unlock()
	if !found {
		fail(c, http.StatusNotFound, "store not found")
		return
	}
	ok(c, record)
}

func (f *FakeAPI) handleCreateStore(c *gin.Context) {
	var req map[string]any
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if f.failNext(c) {
		return
	}

	f.mutex.Lock()
	f.nextStoreID++
	id := f.nextStoreID
	req["store_id"] = id
	req["is_active"] = 1
	f.Stores[id] = req
	f.mutex.Unlock()

	response := make(map[string]any, len(req)+1)
	for k, v := range req {
		response[k] = v
	}
	response["owner_credentials"] = gin.H{
		"email":    req["owner_email"],
		"password": req["owner_password"],
	}
	ok(c, response)
}

func (f *FakeAPI) handleDeleteStore(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if f.failNext(c) {
		return
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if _, found := f.Stores[id]; !found {
		fail(c, http.StatusNotFound, "store not found")
		return
	}
	delete(f.Stores, id)
	ok(c, nil)
}

func (f *FakeAPI) handleUpdateFeatures(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}

	f.mutex.Lock()
	gate := f.SaveGate
	f.mutex.Unlock()
	if gate != nil {
		<-gate
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if f.failNext(c) {
		return
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	record, found := f.Stores[id]
	if !found {
		fail(c, http.StatusNotFound, "store not found")
		return
	}
	for k, v := range payload {
		record[k] = v
	}
	f.FeatureSaves++
	ok(c, record)
}

func (f *FakeAPI) handleGlobalPermissions(c *gin.Context) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	perms := f.GlobalPermissions
	if perms == nil {
		perms = []map[string]any{}
	}
	ok(c, perms)
}

func (f *FakeAPI) handleStorePermissions(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	perms, found := f.Permissions[id]
	if !found {
		ok(c, []map[string]any{})
		return
	}
	ok(c, perms)
}

func (f *FakeAPI) handleUpdatePermissions(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}

	f.mutex.Lock()
	gate := f.SaveGate
	f.mutex.Unlock()
	if gate != nil {
		<-gate
	}

	var req struct {
		Permissions []struct {
			PermissionID int64 `json:"permission_id"`
			IsEnabled    bool  `json:"is_enabled"`
		} `json:"permissions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if f.failNext(c) {
		return
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	enabled := make(map[int64]bool, len(req.Permissions))
	for _, p := range req.Permissions {
		enabled[p.PermissionID] = p.IsEnabled
	}
	for _, entry := range f.Permissions[id] {
		var permID int64
		switch v := entry["permission_id"].(type) {
		case int:
			permID = int64(v)
		case int64:
			permID = v
		case float64:
			permID = int64(v)
		}
		if on, listed := enabled[permID]; listed {
			if on {
				entry["store_enabled"] = 1
			} else {
				entry["store_enabled"] = 0
			}
		}
	}
	f.PermissionSaves++
	ok(c, f.Permissions[id])
}

func (f *FakeAPI) handleListInvoices(c *gin.Context) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	invoices := make([]map[string]any, 0, len(f.Invoices))
	for _, invoice := range f.Invoices {
		invoices = append(invoices, invoice)
	}
	ok(c, invoices)
}

func (f *FakeAPI) handleCreateInvoice(c *gin.Context) {
	var req map[string]any
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if f.failNext(c) {
		return
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.nextInvoiceID++
	req["invoice_id"] = f.nextInvoiceID
	req["invoice_number"] = fmt.Sprintf("INV-%d", f.nextInvoiceID)
	f.Invoices[f.nextInvoiceID] = req
	ok(c, req)
}

func (f *FakeAPI) handleGetInvoice(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	invoice, found := f.Invoices[id]
	if !found {
		fail(c, http.StatusNotFound, "invoice not found")
		return
	}
	ok(c, invoice)
}

func (f *FakeAPI) handleUpdatePayment(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req map[string]any
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if f.failNext(c) {
		return
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	invoice, found := f.Invoices[id]
	if !found {
		fail(c, http.StatusNotFound, "invoice not found")
		return
	}
	for k, v := range req {
		invoice[k] = v
	}
	ok(c, invoice)
}

func (f *FakeAPI) handleListTemplates(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	templates := f.Templates[id]
	if templates == nil {
		templates = []map[string]any{}
	}
	ok(c, templates)
}

func (f *FakeAPI) handleCreateTemplate(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req map[string]any
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if f.failNext(c) {
		return
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.nextTemplateID++
	req["template_id"] = f.nextTemplateID
	f.Templates[id] = append(f.Templates[id], req)
	ok(c, req)
}

func (f *FakeAPI) handleUpdateTemplate(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	templateID, valid := pathID(c, "templateId")
	if !valid {
		return
	}
	var req map[string]any
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if f.failNext(c) {
		return
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	for _, tmpl := range f.Templates[id] {
		matched, isFloat := tmpl["template_id"].(float64)
		current, isInt := tmpl["template_id"].(int64)
		if (isFloat && int64(matched) == templateID) || (isInt && current == templateID) {
			for k, v := range req {
				tmpl[k] = v
			}
			ok(c, tmpl)
			return
		}
	}
	fail(c, http.StatusNotFound, "template not found")
}

func (f *FakeAPI) handleDeleteTemplate(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	templateID, valid := pathID(c, "templateId")
	if !valid {
		return
	}
	if f.failNext(c) {
		return
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	kept := f.Templates[id][:0]
	for _, tmpl := range f.Templates[id] {
		current, isInt := tmpl["template_id"].(int64)
		asFloat, isFloat := tmpl["template_id"].(float64)
		if (isInt && current == templateID) || (isFloat && int64(asFloat) == templateID) {
			continue
		}
		kept = append(kept, tmpl)
	}
	f.Templates[id] = kept
	ok(c, nil)
}
