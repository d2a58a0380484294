package handler

import (
	"net/http"
	"time"

	"github.com/Ranjel272/my-backend-services/internal/apierror"
	"github.com/Ranjel272/my-backend-services/internal/dto"
	"github.com/Ranjel272/my-backend-services/internal/service"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct{ svc service.EmployeeService }

func NewEmployeeHandler(svc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

// parseHireDate accepts the date-only form value used by the account forms.
func parseHireDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	in := dto.CreateEmployeeInput{
		FullName:     c.PostForm("fullName"),
		Username:     c.PostForm("username"),
		Password:     c.PostForm("password"),
		UserRole:     c.PostForm("userRole"),
		EmailAddress: c.PostForm("emailAddress"),
	}
	if in.FullName == "" || in.Password == "" || in.UserRole == "" || in.EmailAddress == "" {
		c.JSON(http.StatusBadRequest, apierror.New("fullName, password, userRole and emailAddress are required"))
		return
	}
	if phone := c.PostForm("phoneNumber"); phone != "" {
		in.PhoneNumber = &phone
	}
	hireDate, err := parseHireDate(c.PostForm("hireDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("hireDate must be formatted as YYYY-MM-DD"))
		return
	}
	in.HireDate = hireDate
	if fh, err := c.FormFile("uploadImage"); err == nil {
		in.Image = fh
	}

	resp, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in dto.UpdateEmployeeInput
	// Only fields present in the form are touched; phoneNumber distinguishes
	// "absent" from "empty string clears the value".
	formValue := func(name string) *string {
		if v, exists := c.GetPostForm(name); exists {
			return &v
		}
		return nil
	}
	in.FullName = formValue("fullName")
	in.Username = formValue("username")
	in.Password = formValue("password")
	in.UserRole = formValue("userRole")
	in.EmailAddress = formValue("emailAddress")
	in.PhoneNumber = formValue("phoneNumber")
	if raw := c.PostForm("hireDate"); raw != "" {
		hireDate, err := parseHireDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("hireDate must be formatted as YYYY-MM-DD"))
			return
		}
		in.HireDate = hireDate
	}
	if fh, err := c.FormFile("uploadImage"); err == nil {
		in.Image = fh
	}

	resp, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
