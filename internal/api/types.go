// ABOUTME: Wire types for the BookHaven backend REST API
// ABOUTME: Normalizes the backend _id field into the client-facing id on every read

package api

// Roles known to the backend.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Book is a catalog entry as returned by the backend.
type Book struct {
	ID              string   `json:"id"`
	BackendID       string   `json:"_id,omitempty"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Description     string   `json:"description"`
	CoverImage      string   `json:"coverImage,omitempty"`
	ISBN            string   `json:"isbn,omitempty"`
	PublicationYear int      `json:"publicationYear,omitempty"`
	Publisher       string   `json:"publisher,omitempty"`
	Genre           []string `json:"genre"`
	AverageRating   float64  `json:"averageRating"`
	ReviewCount     int      `json:"reviewCount"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

// normalize copies the backend identifier into ID. Idempotent; when the
// backend field is absent the existing ID is left alone.
func (b *Book) normalize() {
	if b.BackendID != "" {
		b.ID = b.BackendID
	}
}

// NewBook is the write-side subset for creating a book (admin only).
type NewBook struct {
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Description     string   `json:"description"`
	CoverImage      string   `json:"coverImage,omitempty"`
	ISBN            string   `json:"isbn,omitempty"`
	PublicationYear int      `json:"publicationYear,omitempty"`
	Publisher       string   `json:"publisher,omitempty"`
	Genre           []string `json:"genre"`
}

// BookFilters narrows a book listing. Empty fields are omitted from the query.
type BookFilters struct {
	Title  string
	Author string
	Genre  string
}

// Pagination describes the backend's paging envelope.
type Pagination struct {
	TotalCount  int `json:"totalCount"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

// BookPage is one page of a book listing.
type BookPage struct {
	Data       []Book     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Review is a user review of a book.
type Review struct {
	ID        string `json:"id"`
	BackendID string `json:"_id,omitempty"`
	BookID    string `json:"bookId"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Rating    int    `json:"rating"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func (r *Review) normalize() {
	if r.BackendID != "" {
		r.ID = r.BackendID
	}
}

// NewReview is the write-side subset for submitting a review.
type NewReview struct {
	BookID  string `json:"bookId"`
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

// ReviewPage is one page of a review listing.
type ReviewPage struct {
	Data       []Review   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// User is the authenticated identity returned by the backend.
type User struct {
	ID        string `json:"id"`
	BackendID string `json:"_id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func (u *User) normalize() {
	if u.BackendID != "" {
		u.ID = u.BackendID
	}
}

// Profile extends User with the editable profile fields.
type Profile struct {
	User
	Bio            string   `json:"bio,omitempty"`
	Avatar         string   `json:"avatar,omitempty"`
	FavoriteGenres []string `json:"favoriteGenres,omitempty"`
	ReviewCount    int      `json:"reviewCount"`
}

// ProfileUpdate carries the editable subset of a profile.
type ProfileUpdate struct {
	Name           string   `json:"name,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	FavoriteGenres []string `json:"favoriteGenres,omitempty"`
}
