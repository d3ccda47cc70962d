package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gitlab.com/radek.prochazka/contact-book/internal/model"
	"gitlab.com/radek.prochazka/contact-book/internal/schema"
)

// parseSkipAndLimit inspects the URL parameters and determines how much of
// the result set is skipped and returned. The defaults are skip=0 and
// limit=100; negative values are rejected.
func parseSkipAndLimit(c *gin.Context) (skip int, limit int, success bool) {
	skip, limit = 0, 100
	if value := c.Query("skip"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid skip parameter"})
			return 0, 0, false
		}
		skip = parsed
	}
	if value := c.Query("limit"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid limit parameter"})
			return 0, 0, false
		}
		limit = parsed
	}
	return skip, limit, true
}

// parseContactId reads the id path parameter. A non-numeric id is reported
// as not found, the same as an id that does not exist.
func parseContactId(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return 0, false
	}
	return id, true
}

// findAllContacts responds with the authenticated user's contacts as JSON.
//
// The URL parameter 'limit' specifies how many contacts are returned. The
// URL parameter 'skip' specifies how many contacts are skipped in the
// beginning. Together, one can implement result paging.
//
// Example REST API calls:
//
//	> curl "http://localhost:8080/contacts" --header "Authorization: Bearer $TOKEN"
//	> curl "http://localhost:8080/contacts?limit=20&skip=60" --header "Authorization: Bearer $TOKEN"
func (h *Handlers) findAllContacts(c *gin.Context) {
	skip, limit, ok := parseSkipAndLimit(c)
	if !ok {
		return
	}
	contacts, err := h.contacts.List(owner(c), skip, limit)
	if err != nil {
		h.abortServerError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, schema.NewContactReads(contacts))
}

// findContactByID locates the contact whose ID value matches the id
// parameter of the request URL, then returns that contact as a response. A
// contact owned by another user is answered exactly like a missing one.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/contacts/56" --header "Authorization: Bearer $TOKEN"
func (h *Handlers) findContactByID(c *gin.Context) {
	id, ok := parseContactId(c)
	if !ok {
		return
	}
	contact, err := h.contacts.Get(id, owner(c))
	if errors.Is(err, model.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return
	}
	if err != nil {
		h.abortServerError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, schema.NewContactRead(contact))
}

// createContact inserts the contact specified in the request's JSON into
// the database. It responds with the contact as stored, including the newly
// assigned id.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts --request "POST" --include --header "Content-Type: application/json" --header "Authorization: Bearer $TOKEN" --data '{"first_name": "Hans", "last_name": "Wurst", "email": "hans@example.com", "phone": "0815", "birthday": "1969-03-02"}'
func (h *Handlers) createContact(c *gin.Context) {
	var body schema.ContactCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	contact, err := h.contacts.Create(body, owner(c))
	if err != nil {
		h.abortServerError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, schema.NewContactRead(contact))
}

// updateContactByID updates the contact whose ID value matches the id
// parameter of the request URL, overwrites the fields present in the JSON
// (and only those), and finally responds with the new version of the
// contact. Sending "info": null clears the stored note; omitting a field
// keeps its value.
//
// Example REST API calls:
//
//	> curl http://localhost:8080/contacts/56 --request "PATCH" --include --header "Content-Type: application/json" --header "Authorization: Bearer $TOKEN" --data '{"phone": "81970"}'
//	> curl http://localhost:8080/contacts/56 --request "PATCH" --include --header "Content-Type: application/json" --header "Authorization: Bearer $TOKEN" --data '{"info": null}'
func (h *Handlers) updateContactByID(c *gin.Context) {
	id, ok := parseContactId(c)
	if !ok {
		return
	}
	var body schema.ContactUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	if err := body.Validate(); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	contact, err := h.contacts.Update(id, owner(c), body)
	if errors.Is(err, model.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return
	}
	if err != nil {
		h.abortServerError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, schema.NewContactRead(contact))
}

// deleteContactByID deletes the contact whose ID value matches the id
// parameter of the request URL from the database. A second delete for the
// same id reports not found.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/56 --request "DELETE" --header "Authorization: Bearer $TOKEN"
func (h *Handlers) deleteContactByID(c *gin.Context) {
	id, ok := parseContactId(c)
	if !ok {
		return
	}
	_, err := h.contacts.Remove(id, owner(c))
	if errors.Is(err, model.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return
	}
	if err != nil {
		h.abortServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// findUpcomingBirthdays responds with the contacts on the requested page
// whose birthday falls within the next seven days.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/contacts/birthdays" --header "Authorization: Bearer $TOKEN"
func (h *Handlers) findUpcomingBirthdays(c *gin.Context) {
	skip, limit, ok := parseSkipAndLimit(c)
	if !ok {
		return
	}
	contacts, err := h.contacts.UpcomingBirthdays(owner(c), skip, limit)
	if err != nil {
		h.abortServerError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, schema.NewContactReads(contacts))
}

// findContacts responds with the contacts whose first name, last name, or
// email contains the 'query' URL parameter, case-insensitively. An empty
// query matches every contact.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/contacts/find?query=lovel" --header "Authorization: Bearer $TOKEN"
func (h *Handlers) findContacts(c *gin.Context) {
	skip, limit, ok := parseSkipAndLimit(c)
	if !ok {
		return
	}
	contacts, err := h.contacts.Find(c.Query("query"), owner(c), skip, limit)
	if err != nil {
		h.abortServerError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, schema.NewContactReads(contacts))
}
