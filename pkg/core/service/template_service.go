package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"storeops.com/console/pkg/shared/client"
)

type NotificationTemplate struct {
	TemplateID      int64  `json:"template_id"`
	TemplateName    string `json:"template_name"`
	TemplateType    string `json:"template_type"`
	EventType       string `json:"event_type"`
	TitleTemplate   string `json:"title_template"`
	MessageTemplate string `json:"message_template"`
	IsActive        bool   `json:"-"`
}

type TemplateRequest struct {
	TemplateName    string `json:"template_name" validate:"required"`
	TemplateType    string `json:"template_type" validate:"required,oneof=promotional transactional order_status"`
	EventType       string `json:"event_type"`
	TitleTemplate   string `json:"title_template" validate:"required"`
	MessageTemplate string `json:"message_template" validate:"required"`
	IsActive        bool   `json:"is_active"`
}

type TemplateService struct {
	client *client.Client
}

func NewTemplateService(c *client.Client) *TemplateService {
	return &TemplateService{client: c}
}

type wireTemplate struct {
	TemplateID      int64  `json:"template_id"`
	TemplateName    string `json:"template_name"`
	TemplateType    string `json:"template_type"`
	EventType       string `json:"event_type"`
	TitleTemplate   string `json:"title_template"`
	MessageTemplate string `json:"message_template"`
	IsActive        any    `json:"is_active"`
}

func (w wireTemplate) normalize() NotificationTemplate {
	active := false
	switch t := w.IsActive.(type) {
	case bool:
		active = t
	case float64:
		active = t == 1
	}
	return NotificationTemplate{
		TemplateID:      w.TemplateID,
		TemplateName:    w.TemplateName,
		TemplateType:    w.TemplateType,
		EventType:       w.EventType,
		TitleTemplate:   w.TitleTemplate,
		MessageTemplate: w.MessageTemplate,
		IsActive:        active,
	}
}

func (s *TemplateService) List(ctx context.Context, storeID int64) ([]NotificationTemplate, error) {
	env, err := s.client.Request(ctx, http.MethodGet, fmt.Sprintf("%s/stores/%d/notification-templates", basePath, storeID), nil)
	if err != nil {
		return nil, err
	}

	templates := []NotificationTemplate{}
	if len(env.Data) == 0 {
		return templates, nil
	}
	var wire []wireTemplate
	if err := json.Unmarshal(env.Data, &wire); err != nil {
		return templates, nil
	}
	for _, w := range wire {
		templates = append(templates, w.normalize())
	}
	return templates, nil
}

func (s *TemplateService) Create(ctx context.Context, storeID int64, req TemplateRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("invalid template request: %w", err)
	}
	return s.client.Post(ctx, fmt.Sprintf("%s/stores/%d/notification-templates", basePath, storeID), req, nil)
}

func (s *TemplateService) Update(ctx context.Context, storeID, templateID int64, req TemplateRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("invalid template request: %w", err)
	}
	return s.client.Put(ctx, fmt.Sprintf("%s/stores/%d/notification-templates/%d", basePath, storeID, templateID), req, nil)
}

func (s *TemplateService) Delete(ctx context.Context, storeID, templateID int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("%s/stores/%d/notification-templates/%d", basePath, storeID, templateID))
}
