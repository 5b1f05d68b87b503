package api

import (
	"errors"
	"net/http"
	"strconv"

	"libraminds/domain/entities"
	"libraminds/domain/interfaces"
	"libraminds/domain/services"
)

func (s *Server) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	data := envelope{
		"status":      "available",
		"environment": s.cfg.Environment,
	}
	if err := s.writeJSON(w, http.StatusOK, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) borrowHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID int64 `json:"user_id"`
		BookID int64 `json:"book_id"`
	}
	if err := s.readJSON(w, r, &input); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	var receipt *entities.BorrowReceipt
	err := s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		lending := services.NewLendingService(
			uow.UserRepository(),
			uow.BookRepository(),
			uow.LoanRecordRepository(),
			uow.EventPublisher(),
		)
		var err error
		receipt, err = lending.Borrow(r.Context(), input.UserID, input.BookID)
		return err
	})
	if err != nil {
		s.serviceErrorResponse(w, r, err)
		return
	}

	data := envelope{"loan": borrowReceiptResponse{
		BookID:     receipt.BookID,
		UserID:     receipt.UserID,
		BorrowDate: receipt.BorrowDate,
		DueDate:    receipt.DueDate,
	}}
	if err := s.writeJSON(w, http.StatusCreated, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) returnHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		BookID int64 `json:"book_id"`
	}
	if err := s.readJSON(w, r, &input); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	var receipt *entities.ReturnReceipt
	err := s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		lending := services.NewLendingService(
			uow.UserRepository(),
			uow.BookRepository(),
			uow.LoanRecordRepository(),
			uow.EventPublisher(),
		)
		var err error
		receipt, err = lending.Return(r.Context(), input.BookID)
		return err
	})
	if err != nil {
		s.serviceErrorResponse(w, r, err)
		return
	}

	data := envelope{"return": returnReceiptResponse{
		BookID:     receipt.BookID,
		UserID:     receipt.UserID,
		ReturnDate: receipt.ReturnDate,
		FineCents:  receipt.FineCents,
		ReservedBy: receipt.ReservedBy,
	}}
	if err := s.writeJSON(w, http.StatusOK, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) reserveHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID int64 `json:"user_id"`
		BookID int64 `json:"book_id"`
	}
	if err := s.readJSON(w, r, &input); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	err := s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		lending := services.NewLendingService(
			uow.UserRepository(),
			uow.BookRepository(),
			uow.LoanRecordRepository(),
			uow.EventPublisher(),
		)
		return lending.Reserve(r.Context(), input.UserID, input.BookID)
	})
	if err != nil {
		s.serviceErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) cancelReservationHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID int64 `json:"user_id"`
		BookID int64 `json:"book_id"`
	}
	if err := s.readJSON(w, r, &input); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	err := s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		lending := services.NewLendingService(
			uow.UserRepository(),
			uow.BookRepository(),
			uow.LoanRecordRepository(),
			uow.EventPublisher(),
		)
		return lending.CancelReservation(r.Context(), input.UserID, input.BookID)
	})
	if err != nil {
		s.serviceErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addFundsHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID      int64 `json:"user_id"`
		AmountCents int64 `json:"amount_cents"`
	}
	if err := s.readJSON(w, r, &input); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	var statement *entities.WalletStatement
	err := s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		wallet := services.NewWalletService(
			uow.UserRepository(),
			uow.WalletTransactionRepository(),
			uow.EventPublisher(),
		)
		var err error
		statement, err = wallet.AddFunds(r.Context(), input.UserID, input.AmountCents)
		return err
	})
	if err != nil {
		s.serviceErrorResponse(w, r, err)
		return
	}

	data := envelope{"wallet": toWalletStatementResponse(statement)}
	if err := s.writeJSON(w, http.StatusOK, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) payFineHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID      int64 `json:"user_id"`
		AmountCents int64 `json:"amount_cents"`
	}
	if err := s.readJSON(w, r, &input); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	var statement *entities.WalletStatement
	err := s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		wallet := services.NewWalletService(
			uow.UserRepository(),
			uow.WalletTransactionRepository(),
			uow.EventPublisher(),
		)
		var err error
		statement, err = wallet.PayFine(r.Context(), input.UserID, input.AmountCents)
		return err
	})
	if err != nil {
		s.serviceErrorResponse(w, r, err)
		return
	}

	data := envelope{"wallet": toWalletStatementResponse(statement)}
	if err := s.writeJSON(w, http.StatusOK, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) upgradeTierHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID int64  `json:"user_id"`
		Tier   string `json:"tier"`
	}
	if err := s.readJSON(w, r, &input); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	var statement *entities.WalletStatement
	err := s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		wallet := services.NewWalletService(
			uow.UserRepository(),
			uow.WalletTransactionRepository(),
			uow.EventPublisher(),
		)
		var err error
		statement, err = wallet.UpgradeTier(r.Context(), input.UserID, entities.Tier(input.Tier))
		return err
	})
	if err != nil {
		s.serviceErrorResponse(w, r, err)
		return
	}

	data := envelope{"wallet": toWalletStatementResponse(statement)}
	if err := s.writeJSON(w, http.StatusOK, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) addBookHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title      string `json:"title"`
		Author     string `json:"author"`
		CoverURL   string `json:"cover_url"`
		CategoryID int64  `json:"category_id"`
	}
	if err := s.readJSON(w, r, &input); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	var book *entities.Book
	err := s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		catalog := services.NewCatalogService(uow.BookRepository(), uow.CategoryRepository())
		var err error
		book, err = catalog.AddBook(r.Context(), input.Title, input.Author, input.CoverURL, input.CategoryID)
		return err
	})
	if err != nil {
		s.serviceErrorResponse(w, r, err)
		return
	}

	data := envelope{"book": toBookResponse(book)}
	if err := s.writeJSON(w, http.StatusCreated, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler serves the catalog collection. With no parameters it
// searches everything; filter=available and filter=overdue select the two
// listing views; query and category_id narrow a search.
func (s *Server) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	filter := qs.Get("filter")
	query := qs.Get("query")

	var categoryID *int64
	if raw := qs.Get("category_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			s.badRequestResponse(w, r, errInvalidCategoryID)
			return
		}
		categoryID = &parsed
	}

	var books []*entities.Book
	err := s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		catalog := services.NewCatalogService(uow.BookRepository(), uow.CategoryRepository())
		var err error
		switch filter {
		case "":
			books, err = catalog.Search(r.Context(), query, categoryID)
		case "available":
			books, err = catalog.ListAvailable(r.Context())
		case "overdue":
			books, err = catalog.ListOverdue(r.Context())
		default:
			return errInvalidFilter
		}
		return err
	})
	if err != nil {
		if errors.Is(err, errInvalidFilter) {
			s.badRequestResponse(w, r, err)
			return
		}
		s.serviceErrorResponse(w, r, err)
		return
	}

	data := envelope{"books": toBookResponses(books)}
	if err := s.writeJSON(w, http.StatusOK, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) addReviewHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := readIDParam(r)
	if err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	var input struct {
		UserID  int64  `json:"user_id"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := s.readJSON(w, r, &input); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	var summary *entities.ReviewSummary
	err = s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		reviews := services.NewReviewService(
			uow.ReviewRepository(),
			uow.BookRepository(),
			uow.UserRepository(),
		)
		var err error
		summary, err = reviews.AddReview(r.Context(), bookID, input.UserID, input.Rating, input.Comment)
		return err
	})
	if err != nil {
		s.serviceErrorResponse(w, r, err)
		return
	}

	data := envelope{
		"review":         toReviewResponse(summary.Review),
		"average_rating": summary.AverageRating,
		"review_count":   summary.ReviewCount,
	}
	if err := s.writeJSON(w, http.StatusCreated, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := readIDParam(r)
	if err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	var reviews []*entities.Review
	err = s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		svc := services.NewReviewService(
			uow.ReviewRepository(),
			uow.BookRepository(),
			uow.UserRepository(),
		)
		var err error
		reviews, err = svc.ListByBook(r.Context(), bookID)
		return err
	})
	if err != nil {
		s.serviceErrorResponse(w, r, err)
		return
	}

	out := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, toReviewResponse(review))
	}
	data := envelope{"reviews": out}
	if err := s.writeJSON(w, http.StatusOK, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name      string `json:"name"`
		CreatedBy int64  `json:"created_by"`
	}
	if err := s.readJSON(w, r, &input); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	var category *entities.Category
	err := s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		categories := services.NewCategoryService(uow.CategoryRepository(), uow.EventPublisher())
		var err error
		category, err = categories.CreateCategory(r.Context(), input.Name, input.CreatedBy)
		return err
	})
	if err != nil {
		s.serviceErrorResponse(w, r, err)
		return
	}

	data := envelope{"category": toCategoryResponse(category)}
	if err := s.writeJSON(w, http.StatusCreated, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) approveCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := readIDParam(r)
	if err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	var category *entities.Category
	err = s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		categories := services.NewCategoryService(uow.CategoryRepository(), uow.EventPublisher())
		var err error
		category, err = categories.ApproveCategory(r.Context(), categoryID)
		return err
	})
	if err != nil {
		s.serviceErrorResponse(w, r, err)
		return
	}

	data := envelope{"category": toCategoryResponse(category)}
	if err := s.writeJSON(w, http.StatusOK, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	var status *entities.CategoryStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed := entities.CategoryStatus(raw)
		if parsed != entities.CategoryStatusPending && parsed != entities.CategoryStatusApproved {
			s.badRequestResponse(w, r, errInvalidStatus)
			return
		}
		status = &parsed
	}

	var categories []*entities.Category
	err := s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		svc := services.NewCategoryService(uow.CategoryRepository(), uow.EventPublisher())
		var err error
		categories, err = svc.ListCategories(r.Context(), status)
		return err
	})
	if err != nil {
		s.serviceErrorResponse(w, r, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, toCategoryResponse(category))
	}
	data := envelope{"categories": out}
	if err := s.writeJSON(w, http.StatusOK, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) listUserLoansHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := readIDParam(r)
	if err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	var books []*entities.Book
	err = s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		catalog := services.NewCatalogService(uow.BookRepository(), uow.CategoryRepository())
		var err error
		books, err = catalog.ListBorrowedBy(r.Context(), userID)
		return err
	})
	if err != nil {
		s.serviceErrorResponse(w, r, err)
		return
	}

	data := envelope{"books": toBookResponses(books)}
	if err := s.writeJSON(w, http.StatusOK, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) listUserHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := readIDParam(r)
	if err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	limit := readLimit(r, 50)

	var records []*entities.LoanRecord
	err = s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		records, err = uow.LoanRecordRepository().GetByUser(r.Context(), userID, limit)
		return err
	})
	if err != nil {
		s.serviceErrorResponse(w, r, err)
		return
	}

	data := envelope{"history": toLoanRecordResponses(records)}
	if err := s.writeJSON(w, http.StatusOK, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) listUserTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := readIDParam(r)
	if err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	limit := readLimit(r, 50)

	var transactions []*entities.WalletTransaction
	err = s.withUnitOfWork(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		transactions, err = uow.WalletTransactionRepository().GetByUser(r.Context(), userID, limit)
		return err
	})
	if err != nil {
		s.serviceErrorResponse(w, r, err)
		return
	}

	data := envelope{"transactions": toTransactionResponses(transactions)}
	if err := s.writeJSON(w, http.StatusOK, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func readLimit(r *http.Request, defaultLimit int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > 500 {
		return defaultLimit
	}
	return limit
}
