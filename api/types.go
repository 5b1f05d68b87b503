package api

import (
	"time"

	"libraminds/domain/entities"
)

type bookResponse struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	CategoryID int64      `json:"category_id"`
	CoverURL   string     `json:"cover_url,omitempty"`
	BorrowedBy *int64     `json:"borrowed_by,omitempty"`
	BorrowDate *time.Time `json:"borrow_date,omitempty"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	ReservedBy *int64     `json:"reserved_by,omitempty"`
}

func toBookResponse(book *entities.Book) bookResponse {
	return bookResponse{
		ID:         book.ID,
		Title:      book.Title,
		Author:     book.Author,
		CategoryID: book.CategoryID,
		CoverURL:   book.CoverURL,
		BorrowedBy: book.BorrowedBy,
		BorrowDate: book.BorrowDate,
		DueDate:    book.DueDate,
		ReservedBy: book.ReservedBy,
	}
}

func toBookResponses(books []*entities.Book) []bookResponse {
	out := make([]bookResponse, 0, len(books))
	for _, book := range books {
		out = append(out, toBookResponse(book))
	}
	return out
}

type categoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	CreatedBy int64  `json:"created_by"`
}

func toCategoryResponse(category *entities.Category) categoryResponse {
	return categoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Status:    string(category.Status),
		CreatedBy: category.CreatedBy,
	}
}

type borrowReceiptResponse struct {
	BookID     int64     `json:"book_id"`
	UserID     int64     `json:"user_id"`
	BorrowDate time.Time `json:"borrow_date"`
	DueDate    time.Time `json:"due_date"`
}

type returnReceiptResponse struct {
	BookID     int64     `json:"book_id"`
	UserID     int64     `json:"user_id"`
	ReturnDate time.Time `json:"return_date"`
	FineCents  int64     `json:"fine_cents"`
	ReservedBy *int64    `json:"reserved_by,omitempty"`
}

type walletStatementResponse struct {
	UserID      int64  `json:"user_id"`
	WalletCents int64  `json:"wallet_cents"`
	FineCents   int64  `json:"fine_cents"`
	Tier        string `json:"tier"`
}

func toWalletStatementResponse(statement *entities.WalletStatement) walletStatementResponse {
	return walletStatementResponse{
		UserID:      statement.UserID,
		WalletCents: statement.WalletCents,
		FineCents:   statement.FineCents,
		Tier:        string(statement.Tier),
	}
}

type loanRecordResponse struct {
	ID         int64     `json:"id"`
	BookID     int64     `json:"book_id"`
	UserID     int64     `json:"user_id"`
	BorrowDate time.Time `json:"borrow_date"`
	ReturnDate time.Time `json:"return_date"`
	FineCents  int64     `json:"fine_cents"`
}

func toLoanRecordResponses(records []*entities.LoanRecord) []loanRecordResponse {
	out := make([]loanRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, loanRecordResponse{
			ID:         record.ID,
			BookID:     record.BookID,
			UserID:     record.UserID,
			BorrowDate: record.BorrowDate,
			ReturnDate: record.ReturnDate,
			FineCents:  record.FineCents,
		})
	}
	return out
}

type reviewResponse struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"book_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toReviewResponse(review *entities.Review) reviewResponse {
	return reviewResponse{
		ID:        review.ID,
		BookID:    review.BookID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

type transactionResponse struct {
	ID            int64          `json:"id"`
	UserID        int64          `json:"user_id"`
	BalanceBefore int64          `json:"balance_before"`
	BalanceAfter  int64          `json:"balance_after"`
	ChangeCents   int64          `json:"change_cents"`
	Type          string         `json:"type"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

func toTransactionResponses(transactions []*entities.WalletTransaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, transactionResponse{
			ID:            tx.ID,
			UserID:        tx.UserID,
			BalanceBefore: tx.BalanceBefore,
			BalanceAfter:  tx.BalanceAfter,
			ChangeCents:   tx.ChangeCents,
			Type:          string(tx.Type),
			Metadata:      tx.Metadata,
			CreatedAt:     tx.CreatedAt,
		})
	}
	return out
}
