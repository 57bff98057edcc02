package domain

// Collection names in the external document store.
const (
	ColReservations          = "reservations"
	ColQuotes                = "quotes"
	ColProducts              = "products"
	ColServices              = "services"
	ColShops                 = "shops"
	ColFranchiseApplications = "franchiseApplications"
	ColBlogPosts             = "blogPosts"
)

// ReservationStatus values. The enum is documentation only; transitions are
// not validated against a table and any value may be written at any time.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationApproved  ReservationStatus = "approved"
	ReservationCancelled ReservationStatus = "cancelled"
)

type QuoteStatus string

const (
	QuoteNew        QuoteStatus = "new"
	QuoteProcessing QuoteStatus = "processing"
	QuoteResponded  QuoteStatus = "responded"
	QuoteClosed     QuoteStatus = "closed"
)

type FranchiseApplicationStatus string

const (
	FranchiseNew       FranchiseApplicationStatus = "new"
	FranchiseReviewing FranchiseApplicationStatus = "reviewing"
	FranchiseApproved  FranchiseApplicationStatus = "approved"
	FranchiseRejected  FranchiseApplicationStatus = "rejected"
)

// Reservation is a repair appointment booked via the public form.
// IDs are assigned client-side from the creation timestamp (UnixMilli) and
// never reassigned. Dates are YYYY-MM-DD strings.
type Reservation struct {
	ID       int64             `json:"id" firestore:"id"`
	Name     string            `json:"name" firestore:"name"`
	Email    string            `json:"email" firestore:"email"`
	Phone    string            `json:"phone" firestore:"phone"`
	Device   string            `json:"device" firestore:"device"`
	Service  string            `json:"service" firestore:"service"`
	Shop     string            `json:"shop" firestore:"shop"`
	TimeSlot string            `json:"timeSlot" firestore:"timeSlot"`
	Date     string            `json:"date" firestore:"date"`
	Status   ReservationStatus `json:"status" firestore:"status"`
}

// Quote is a buyback quote request from the public site.
type Quote struct {
	ID        int64       `json:"id" firestore:"id"`
	Name      string      `json:"name" firestore:"name"`
	Email     string      `json:"email" firestore:"email"`
	Phone     string      `json:"phone" firestore:"phone"`
	Device    string      `json:"device" firestore:"device"`
	Condition string      `json:"condition" firestore:"condition"`
	Date      string      `json:"date" firestore:"date"`
	Status    QuoteStatus `json:"status" firestore:"status"`
}

type FranchiseApplication struct {
	ID      int64                      `json:"id" firestore:"id"`
	Name    string                     `json:"name" firestore:"name"`
	Email   string                     `json:"email" firestore:"email"`
	Phone   string                     `json:"phone" firestore:"phone"`
	City    string                     `json:"city" firestore:"city"`
	Budget  string                     `json:"budget" firestore:"budget"`
	Message string                     `json:"message" firestore:"message"`
	Date    string                     `json:"date" firestore:"date"`
	Status  FranchiseApplicationStatus `json:"status" firestore:"status"`
}

// Product is a refurbished device offered for sale.
type Product struct {
	ID        int64   `json:"id" firestore:"id"`
	Name      string  `json:"name" firestore:"name"`
	Category  string  `json:"category" firestore:"category"`
	Price     float64 `json:"price" firestore:"price"`
	Condition string  `json:"condition" firestore:"condition"`
	Storage   string  `json:"storage" firestore:"storage"`
	ImageURL  string  `json:"imageUrl" firestore:"imageUrl"`
	InStock   bool    `json:"inStock" firestore:"inStock"`
}

// Service is a repair service offering. Read-only: the admin dashboard
// exposes no mutation for it.
type Service struct {
	ID          int64  `json:"id" firestore:"id"`
	Name        string `json:"name" firestore:"name"`
	Description string `json:"description" firestore:"description"`
	PriceRange  string `json:"priceRange" firestore:"priceRange"`
	Duration    string `json:"duration" firestore:"duration"`
	Icon        string `json:"icon" firestore:"icon"`
}

// Shop is a physical store location. Update-only: shops are seeded once and
// never created or deleted through the application.
type Shop struct {
	ID       int64  `json:"id" firestore:"id"`
	Name     string `json:"name" firestore:"name"`
	Address  string `json:"address" firestore:"address"`
	City     string `json:"city" firestore:"city"`
	Phone    string `json:"phone" firestore:"phone"`
	Hours    string `json:"hours" firestore:"hours"`
	MapsURL  string `json:"mapsUrl" firestore:"mapsUrl"`
	ImageURL string `json:"imageUrl" firestore:"imageUrl"`
}

type BlogPost struct {
	ID       int64  `json:"id" firestore:"id"`
	Title    string `json:"title" firestore:"title"`
	Excerpt  string `json:"excerpt" firestore:"excerpt"`
	Content  string `json:"content" firestore:"content"`
	Author   string `json:"author" firestore:"author"`
	ImageURL string `json:"imageUrl" firestore:"imageUrl"`
	Date     string `json:"date" firestore:"date"`
}
