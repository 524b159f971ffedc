package mapper

import (
	"doc-templates-be/internal/entity"
	"doc-templates-be/internal/model"
)

type ActivityMapper struct{}

func NewActivityMapper() *ActivityMapper {
	return &ActivityMapper{}
}

func (m *ActivityMapper) ToEntity(a *model.Activity) *entity.Activity {
	if a == nil {
		return nil
	}
	return &entity.Activity{
		Id:         a.Id,
		SessionId:  a.SessionId,
		UserId:     a.UserId,
		Kind:       entity.ActivityKind(a.Kind),
		TemplateId: a.TemplateId,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *ActivityMapper) ToModel(a *entity.Activity) *model.Activity {
	if a == nil {
		return nil
	}
	return &model.Activity{
		Id:         a.Id,
		SessionId:  a.SessionId,
		UserId:     a.UserId,
		Kind:       string(a.Kind),
		TemplateId: a.TemplateId,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *ActivityMapper) ToEntities(models []*model.Activity) []*entity.Activity {
	out := make([]*entity.Activity, 0, len(models))
	for _, a := range models {
		out = append(out, m.ToEntity(a))
	}
	return out
}
