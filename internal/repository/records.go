package repository

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"flux-web/internal/domain"
)

// Record kinds, used as partition keys.
const (
	KindExpo                = "EXPO"
	KindBooth               = "BOOTH"
	KindSession             = "SESSION"
	KindApplication         = "APPLICATION"
	KindExpoRegistration    = "EXPO_REGISTRATION"
	KindSessionRegistration = "SESSION_REGISTRATION"
	KindMessage             = "MESSAGE"
	KindProfile             = "PROFILE"
	KindService             = "SERVICE"
	KindProject             = "PROJECT"
)

// Tables groups the gateways of every record kind over one Client.
type Tables struct {
	Expos                *Table[domain.Expo]
	Booths               *Table[domain.Booth]
	Sessions             *Table[domain.Session]
	Applications         *Table[domain.Application]
	ExpoRegistrations    *Table[domain.ExpoRegistration]
	SessionRegistrations *Table[domain.SessionRegistration]
	Messages             *Table[domain.Message]
	Profiles             *Table[domain.Profile]
	Services             *Table[domain.Service]
	Projects             *Table[domain.Project]
}

// NewTables builds the record gateways backed by c.
func NewTables(c *Client) *Tables {
	return &Tables{
		Expos:                newTable(c, expoCodec),
		Booths:               newTable(c, boothCodec),
		Sessions:             newTable(c, sessionCodec),
		Applications:         newTable(c, applicationCodec),
		ExpoRegistrations:    newTable(c, expoRegistrationCodec),
		SessionRegistrations: newTable(c, sessionRegistrationCodec),
		Messages:             newTable(c, messageCodec),
		Profiles:             newTable(c, profileCodec),
		Services:             newTable(c, serviceCodec),
		Projects:             newTable(c, projectCodec),
	}
}

type attrs = map[string]types.AttributeValue

var expoCodec = codec[domain.Expo]{
	kind: KindExpo,
	id:   func(e domain.Expo) string { return e.ID },
	encode: func(e domain.Expo) attrs {
		return attrs{
			"id":          strValue(e.ID),
			"title":       strValue(e.Title),
			"description": strValue(e.Description),
			"theme":       strValue(e.Theme),
			"location":    strValue(e.Location),
			"start_date":  strValue(e.StartDate),
			"end_date":    strValue(e.EndDate),
			"status":      strValue(string(e.Status)),
			"created_by":  strValue(e.CreatedBy),
			"created_at":  timeValue(e.CreatedAt),
			"updated_at":  timeValue(e.UpdatedAt),
		}
	},
	decode: func(r *itemReader) domain.Expo {
		return domain.Expo{
			ID:          r.str("id"),
			Title:       r.str("title"),
			Description: r.optStr("description"),
			Theme:       r.optStr("theme"),
			Location:    r.optStr("location"),
			StartDate:   r.optStr("start_date"),
			EndDate:     r.optStr("end_date"),
			Status:      domain.ExpoStatus(r.str("status")),
			CreatedBy:   r.optStr("created_by"),
			CreatedAt:   r.time("created_at"),
			UpdatedAt:   r.time("updated_at"),
		}
	},
}

var boothCodec = codec[domain.Booth]{
	kind: KindBooth,
	id:   func(b domain.Booth) string { return b.ID },
	encode: func(b domain.Booth) attrs {
		return attrs{
			"id":           strValue(b.ID),
			"expo_id":      strValue(b.ExpoID),
			"booth_number": strValue(b.BoothNumber),
			"size":         strValue(string(b.Size)),
			"price":        floatValue(b.Price),
			"status":       strValue(string(b.Status)),
			"exhibitor_id": strValue(b.ExhibitorID),
		}
	},
	decode: func(r *itemReader) domain.Booth {
		return domain.Booth{
			ID:          r.str("id"),
			ExpoID:      r.str("expo_id"),
			BoothNumber: r.str("booth_number"),
			Size:        domain.BoothSize(r.str("size")),
			Price:       r.float("price"),
			Status:      domain.BoothStatus(r.str("status")),
			ExhibitorID: r.optStr("exhibitor_id"),
		}
	},
}

var sessionCodec = codec[domain.Session]{
	kind: KindSession,
	id:   func(s domain.Session) string { return s.ID },
	encode: func(s domain.Session) attrs {
		return attrs{
			"id":           strValue(s.ID),
			"expo_id":      strValue(s.ExpoID),
			"title":        strValue(s.Title),
			"description":  strValue(s.Description),
			"speaker_name": strValue(s.SpeakerName),
			"location":     strValue(s.Location),
			"start_time":   timeValue(s.StartTime),
			"end_time":     timeValue(s.EndTime),
			"capacity":     numValue(s.Capacity),
		}
	},
	decode: func(r *itemReader) domain.Session {
		return domain.Session{
			ID:          r.str("id"),
			ExpoID:      r.str("expo_id"),
			Title:       r.str("title"),
			Description: r.optStr("description"),
			SpeakerName: r.optStr("speaker_name"),
			Location:    r.optStr("location"),
			StartTime:   r.time("start_time"),
			EndTime:     r.time("end_time"),
			Capacity:    r.num("capacity"),
		}
	},
}

var applicationCodec = codec[domain.Application]{
	kind: KindApplication,
	id:   func(a domain.Application) string { return a.ID },
	encode: func(a domain.Application) attrs {
		return attrs{
			"id":                strValue(a.ID),
			"expo_id":           strValue(a.ExpoID),
			"exhibitor_id":      strValue(a.ExhibitorID),
			"company_name":      strValue(a.CompanyName),
			"products_services": strValue(a.ProductsServices),
			"website":           strValue(a.Website),
			"booth_preference":  strValue(string(a.BoothPreference)),
			"status":            strValue(string(a.Status)),
			"assigned_booth_id": strValue(a.AssignedBoothID),
			"submitted_at":      timeValue(a.SubmittedAt),
			"reviewed_at":       optTimeValue(a.ReviewedAt),
		}
	},
	decode: func(r *itemReader) domain.Application {
		return domain.Application{
			ID:               r.str("id"),
			ExpoID:           r.str("expo_id"),
			ExhibitorID:      r.str("exhibitor_id"),
			CompanyName:      r.str("company_name"),
			ProductsServices: r.optStr("products_services"),
			Website:          r.optStr("website"),
			BoothPreference:  domain.BoothSize(r.optStr("booth_preference")),
			Status:           domain.ApplicationStatus(r.str("status")),
			AssignedBoothID:  r.optStr("assigned_booth_id"),
			SubmittedAt:      r.time("submitted_at"),
			ReviewedAt:       r.optTime("reviewed_at"),
		}
	},
}

var expoRegistrationCodec = codec[domain.ExpoRegistration]{
	kind: KindExpoRegistration,
	id:   func(x domain.ExpoRegistration) string { return x.ID },
	encode: func(x domain.ExpoRegistration) attrs {
		return attrs{
			"id":                strValue(x.ID),
			"expo_id":           strValue(x.ExpoID),
			"attendee_id":       strValue(x.AttendeeID),
			"registration_type": strValue(x.RegistrationType),
			"registered_at":     timeValue(x.RegisteredAt),
		}
	},
	decode: func(r *itemReader) domain.ExpoRegistration {
		return domain.ExpoRegistration{
			ID:               r.str("id"),
			ExpoID:           r.str("expo_id"),
			AttendeeID:       r.str("attendee_id"),
			RegistrationType: r.optStr("registration_type"),
			RegisteredAt:     r.time("registered_at"),
		}
	},
}

var sessionRegistrationCodec = codec[domain.SessionRegistration]{
	kind: KindSessionRegistration,
	id:   func(x domain.SessionRegistration) string { return x.ID },
	encode: func(x domain.SessionRegistration) attrs {
		return attrs{
			"id":            strValue(x.ID),
			"session_id":    strValue(x.SessionID),
			"attendee_id":   strValue(x.AttendeeID),
			"registered_at": timeValue(x.RegisteredAt),
		}
	},
	decode: func(r *itemReader) domain.SessionRegistration {
		return domain.SessionRegistration{
			ID:           r.str("id"),
			SessionID:    r.str("session_id"),
			AttendeeID:   r.str("attendee_id"),
			RegisteredAt: r.time("registered_at"),
		}
	},
}

var messageCodec = codec[domain.Message]{
	kind: KindMessage,
	id:   func(m domain.Message) string { return m.ID },
	encode: func(m domain.Message) attrs {
		return attrs{
			"id":           strValue(m.ID),
			"sender_id":    strValue(m.SenderID),
			"recipient_id": strValue(m.RecipientID),
			"subject":      strValue(m.Subject),
			"content":      strValue(m.Content),
			"is_read":      boolValue(m.IsRead),
			"created_at":   timeValue(m.CreatedAt),
		}
	},
	decode: func(r *itemReader) domain.Message {
		return domain.Message{
			ID:          r.str("id"),
			SenderID:    r.str("sender_id"),
			RecipientID: r.str("recipient_id"),
			Subject:     r.optStr("subject"),
			Content:     r.optStr("content"),
			IsRead:      r.boolean("is_read"),
			CreatedAt:   r.time("created_at"),
		}
	},
}

var profileCodec = codec[domain.Profile]{
	kind: KindProfile,
	id:   func(p domain.Profile) string { return p.ID },
	encode: func(p domain.Profile) attrs {
		return attrs{
			"id":           strValue(p.ID),
			"email":        strValue(p.Email),
			"full_name":    strValue(p.FullName),
			"role":         strValue(string(p.Role)),
			"company_name": strValue(p.CompanyName),
			"phone":        strValue(p.Phone),
			"bio":          strValue(p.Bio),
			"created_at":   timeValue(p.CreatedAt),
		}
	},
	decode: func(r *itemReader) domain.Profile {
		return domain.Profile{
			ID:          r.str("id"),
			Email:       r.optStr("email"),
			FullName:    r.optStr("full_name"),
			Role:        domain.Role(r.str("role")),
			CompanyName: r.optStr("company_name"),
			Phone:       r.optStr("phone"),
			Bio:         r.optStr("bio"),
			CreatedAt:   r.time("created_at"),
		}
	},
}

var serviceCodec = codec[domain.Service]{
	kind: KindService,
	id:   func(s domain.Service) string { return s.ID },
	encode: func(s domain.Service) attrs {
		return attrs{
			"id":            strValue(s.ID),
			"title":         strValue(s.Title),
			"description":   strValue(s.Description),
			"icon":          strValue(s.Icon),
			"features":      listValue(s.Features),
			"gradient":      strValue(s.Gradient),
			"display_order": numValue(s.DisplayOrder),
			"is_active":     boolValue(s.IsActive),
			"created_at":    timeValue(s.CreatedAt),
		}
	},
	decode: func(r *itemReader) domain.Service {
		return domain.Service{
			ID:           r.str("id"),
			Title:        r.str("title"),
			Description:  r.optStr("description"),
			Icon:         r.optStr("icon"),
			Features:     r.list("features"),
			Gradient:     r.optStr("gradient"),
			DisplayOrder: r.num("display_order"),
			IsActive:     r.boolean("is_active"),
			CreatedAt:    r.time("created_at"),
		}
	},
}

var projectCodec = codec[domain.Project]{
	kind: KindProject,
	id:   func(p domain.Project) string { return p.ID },
	encode: func(p domain.Project) attrs {
		return attrs{
			"id":           strValue(p.ID),
			"title":        strValue(p.Title),
			"description":  strValue(p.Description),
			"category":     strValue(p.Category),
			"technologies": listValue(p.Technologies),
			"image_url":    strValue(p.ImageURL),
			"gradient":     strValue(p.Gradient),
			"live_url":     strValue(p.LiveURL),
			"github_url":   strValue(p.GithubURL),
			"status":       strValue(string(p.Status)),
			"featured":     boolValue(p.Featured),
			"created_at":   timeValue(p.CreatedAt),
			"updated_at":   timeValue(p.UpdatedAt),
		}
	},
	decode: func(r *itemReader) domain.Project {
		return domain.Project{
			ID:           r.str("id"),
			Title:        r.str("title"),
			Description:  r.optStr("description"),
			Category:     r.optStr("category"),
			Technologies: r.list("technologies"),
			ImageURL:     r.optStr("image_url"),
			Gradient:     r.optStr("gradient"),
			LiveURL:      r.optStr("live_url"),
			GithubURL:    r.optStr("github_url"),
			Status:       domain.ProjectStatus(r.str("status")),
			Featured:     r.boolean("featured"),
			CreatedAt:    r.time("created_at"),
			UpdatedAt:    r.time("updated_at"),
		}
	},
}
