package dto

import (
	"time"

	"birthday-song-service/internal/generator"
	"birthday-song-service/internal/model"
)

type CreateOrderRequest struct {
	Email             string   `json:"email" validate:"omitempty,email,max=255"`
	RecipientName     string   `json:"recipientName" validate:"required,max=100"`
	Nickname          string   `json:"nickname" validate:"max=100"`
	Gender            string   `json:"gender" validate:"max=32"`
	Age               int      `json:"age" validate:"gte=0,lte=130"`
	Relationship      string   `json:"relationship" validate:"max=100"`
	PersonalityTraits []string `json:"personalityTraits" validate:"max=10,dive,max=50"`
	Hobbies           []string `json:"hobbies" validate:"max=10,dive,max=50"`
	FunnyStory        string   `json:"funnyStory" validate:"max=2000"`
	Occupation        string   `json:"occupation" validate:"max=200"`
	PetPeeve          string   `json:"petPeeve" validate:"max=500"`
	ImportantPeople   string   `json:"importantPeople" validate:"max=1000"`
	SharedMemory      string   `json:"sharedMemory" validate:"max=2000"`
	DesiredMessage    string   `json:"desiredMessage" validate:"max=2000"`
	Tone              string   `json:"tone" validate:"omitempty,tone"`
	Language          string   `json:"language" validate:"max=16"`
}

type UpdateOrderRequest struct {
	Email            *string `json:"email" validate:"omitempty,email,max=255"`
	SelectedStyle    *string `json:"selectedStyle" validate:"omitempty,style"`
	SelectedLyricsID *string `json:"selectedLyricsId" validate:"omitempty,max=64"`
	SelectedSongID   *string `json:"selectedSongId" validate:"omitempty,max=64"`
	Status           *string `json:"status" validate:"omitempty,orderstatus"`
}

func (r *UpdateOrderRequest) Empty() bool {
	return r.Email == nil && r.SelectedStyle == nil && r.SelectedLyricsID == nil &&
		r.SelectedSongID == nil && r.Status == nil
}

type OrderResponse struct {
	Success bool         `json:"success"`
	Order   *model.Order `json:"order"`
}

type GenerateLyricsRequest struct {
	Style string `json:"style" validate:"required,style"`
	Tone  string `json:"tone" validate:"omitempty,tone"`
}

type EditLyricsRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type LyricsListResponse struct {
	Success bool                     `json:"success"`
	Lyrics  []*model.LyricsVariation `json:"lyrics"`
}

type LyricsResponse struct {
	Success bool                   `json:"success"`
	Lyrics  *model.LyricsVariation `json:"lyrics"`
}

type GenerateSongsRequest struct {
	LyricsID string `json:"lyricsId" validate:"max=64"`
}

type SongListResponse struct {
	Success bool                   `json:"success"`
	Songs   []*model.SongVariation `json:"songs"`
}

type VideoResponse struct {
	Success bool             `json:"success"`
	Video   *model.VideoClip `json:"video"`
}

type ShareInfo struct {
	OrderID       string    `json:"orderId"`
	RecipientName string    `json:"recipientName"`
	AudioURL      string    `json:"audioUrl,omitempty"`
	VideoURL      string    `json:"videoUrl,omitempty"`
	Style         string    `json:"style"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ShareResponse struct {
	Success bool       `json:"success"`
	Share   *ShareInfo `json:"share"`
}

type CreateCheckoutRequest struct {
	OrderID string `json:"orderId" validate:"required,max=64"`
	Tier    string `json:"tier" validate:"required,tier"`
}

type CreateCheckoutResponse struct {
	Success     bool   `json:"success"`
	SessionID   string `json:"sessionId"`
	CheckoutURL string `json:"checkoutUrl"`
}

type CheckoutSessionResponse struct {
	Success bool                   `json:"success"`
	Session *model.CheckoutSession `json:"session"`
}

// CompleteCheckoutRequest is the webhook body the mock checkout page posts.
type CompleteCheckoutRequest struct {
	SessionID string `json:"sessionId" validate:"required,max=128"`
}

type CompleteCheckoutResponse struct {
	Success bool                     `json:"success"`
	Payment *model.CompletedCheckout `json:"payment"`
}

type PricingResponse struct {
	Success bool                `json:"success"`
	Tiers   []model.PricingTier `json:"tiers"`
}

type SocialAutofillRequest struct {
	URL string `json:"url" validate:"required,min=1,max=500"`
}

type SocialAutofillResponse struct {
	Success bool               `json:"success"`
	Profile *generator.Profile `json:"profile"`
}

type RecentOrder struct {
	ID            string            `json:"id"`
	RecipientName string            `json:"recipientName"`
	Style         string            `json:"style"`
	Status        model.OrderStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
}

type AdminStats struct {
	TotalOrders       int64              `json:"totalOrders"`
	TotalRevenue      int64              `json:"totalRevenue"`
	TotalRevenueFmt   string             `json:"totalRevenueFmt"`
	CompletedOrders   int64              `json:"completedOrders"`
	ConversionRate    float64            `json:"conversionRate"`
	ConversionRateFmt string             `json:"conversionRateFmt"`
	TopStyles         []model.StyleCount `json:"topStyles"`
	RecentOrders      []RecentOrder      `json:"recentOrders"`
}

type AdminStatsResponse struct {
	Success bool        `json:"success"`
	Stats   *AdminStats `json:"stats"`
}
