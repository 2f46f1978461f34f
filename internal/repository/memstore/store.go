// Package memstore guarda todos os recursos em memória, protegidos por um
// único mutex. Usado com STORAGE_DRIVER=memory e nos testes de concorrência.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/logger"
)

// Store é o estado compartilhado pelos repositórios em memória.
// Cada operação segura o mutex do início ao fim, o que torna a retirada
// e a devolução atômicas.
type Store struct {
	mu        sync.Mutex
	customers map[string]domain.Customer
	genres    map[string]domain.Genre
	movies    map[string]domain.Movie
	rentals   map[string]domain.Rental
	users     map[string]domain.User
	logger    logger.Logger
}

// New cria um Store vazio.
func New(log logger.Logger) *Store {
	return &Store{
		customers: make(map[string]domain.Customer),
		genres:    make(map[string]domain.Genre),
		movies:    make(map[string]domain.Movie),
		rentals:   make(map[string]domain.Rental),
		users:     make(map[string]domain.User),
		logger:    log,
	}
}

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// CustomerRepository é a visão de clientes do Store.
type CustomerRepository struct{ s *Store }

func (s *Store) Customers() *CustomerRepository { return &CustomerRepository{s: s} }

func (r *CustomerRepository) Save(_ context.Context, c domain.Customer) (domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = newID(c.ID)
	r.s.customers[c.ID] = c
	return c, nil
}

func (r *CustomerRepository) FindByID(_ context.Context, id string) (domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return domain.Customer{}, apperror.NewNotFoundError(fmt.Sprintf("Cliente com ID %s não encontrado.", id))
	}
	return c, nil
}

func (r *CustomerRepository) FindAll(_ context.Context) ([]domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CustomerRepository) Update(_ context.Context, c domain.Customer) (domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return domain.Customer{}, apperror.NewNotFoundError(fmt.Sprintf("Cliente com ID %s não encontrado.", c.ID))
	}
	r.s.customers[c.ID] = c
	return c, nil
}

func (r *CustomerRepository) Delete(_ context.Context, id string) (domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return domain.Customer{}, apperror.NewNotFoundError(fmt.Sprintf("Cliente com ID %s não encontrado.", id))
	}
	delete(r.s.customers, id)
	return c, nil
}

// GenreRepository é a visão de gêneros do Store.
type GenreRepository struct{ s *Store }

func (s *Store) Genres() *GenreRepository { return &GenreRepository{s: s} }

func (r *GenreRepository) Save(_ context.Context, g domain.Genre) (domain.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g.ID = newID(g.ID)
	r.s.genres[g.ID] = g
	return g, nil
}

func (r *GenreRepository) FindByID(_ context.Context, id string) (domain.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.genres[id]
	if !ok {
		return domain.Genre{}, apperror.NewNotFoundError(fmt.Sprintf("Gênero com ID %s não encontrado.", id))
	}
	return g, nil
}

func (r *GenreRepository) FindAll(_ context.Context) ([]domain.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Genre, 0, len(r.s.genres))
	for _, g := range r.s.genres {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *GenreRepository) Update(_ context.Context, g domain.Genre) (domain.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.genres[g.ID]; !ok {
		return domain.Genre{}, apperror.NewNotFoundError(fmt.Sprintf("Gênero com ID %s não encontrado.", g.ID))
	}
	r.s.genres[g.ID] = g
	return g, nil
}

func (r *GenreRepository) Delete(_ context.Context, id string) (domain.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.genres[id]
	if !ok {
		return domain.Genre{}, apperror.NewNotFoundError(fmt.Sprintf("Gênero com ID %s não encontrado.", id))
	}
	delete(r.s.genres, id)
	return g, nil
}

// MovieRepository é a visão de filmes do Store.
type MovieRepository struct{ s *Store }

func (s *Store) Movies() *MovieRepository { return &MovieRepository{s: s} }

func (r *MovieRepository) Save(_ context.Context, m domain.Movie) (domain.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = newID(m.ID)
	r.s.movies[m.ID] = m
	return m, nil
}

func (r *MovieRepository) FindByID(_ context.Context, id string) (domain.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movies[id]
	if !ok {
		return domain.Movie{}, apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %s não encontrado.", id))
	}
	return m, nil
}

func (r *MovieRepository) FindAll(_ context.Context) ([]domain.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Movie, 0, len(r.s.movies))
	for _, m := range r.s.movies {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *MovieRepository) Update(_ context.Context, m domain.Movie) (domain.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[m.ID]; !ok {
		return domain.Movie{}, apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %s não encontrado.", m.ID))
	}
	r.s.movies[m.ID] = m
	return m, nil
}

func (r *MovieRepository) Delete(_ context.Context, id string) (domain.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movies[id]
	if !ok {
		return domain.Movie{}, apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %s não encontrado.", id))
	}
	delete(r.s.movies, id)
	return m, nil
}

// RentalRepository é a visão de locações do Store.
type RentalRepository struct{ s *Store }

func (s *Store) Rentals() *RentalRepository { return &RentalRepository{s: s} }

// Checkout verifica e decrementa o estoque e grava a locação sob o mesmo lock.
func (r *RentalRepository) Checkout(_ context.Context, customer domain.CustomerSnapshot, movieID string, dateOut time.Time) (domain.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	movie, ok := r.s.movies[movieID]
	if !ok {
		return domain.Rental{}, apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %s não encontrado.", movieID))
	}
	if movie.NumberInStock <= 0 {
		return domain.Rental{}, apperror.NewOutOfStockError("Filme sem exemplares disponíveis.")
	}

	movie.NumberInStock--
	r.s.movies[movieID] = movie

	rental := domain.NewRental(uuid.NewString(), customer, movie.Snapshot(), dateOut)
	r.s.rentals[rental.ID] = rental
	return rental, nil
}

func (r *RentalRepository) FindOpen(_ context.Context, customerID, movieID string) (domain.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rental, ok := r.s.latest(customerID, movieID, true)
	if !ok {
		return domain.Rental{}, apperror.NewRentalNotFoundError("Nenhuma locação aberta para este cliente e filme.")
	}
	return rental, nil
}

// Settle fecha a locação do par e repõe o estoque sob o mesmo lock.
func (r *RentalRepository) Settle(_ context.Context, customerID, movieID string, close func(*domain.Rental) error) (domain.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rental, ok := r.s.latest(customerID, movieID, true)
	if !ok {
		if rental, ok = r.s.latest(customerID, movieID, false); !ok {
			return domain.Rental{}, apperror.NewRentalNotFoundError("Locação não encontrada para este cliente e filme.")
		}
	}

	if err := close(&rental); err != nil {
		return domain.Rental{}, err
	}
	r.s.rentals[rental.ID] = rental
	r.s.restock(rental.Movie.ID)
	return rental, nil
}

func (r *RentalRepository) FindAll(_ context.Context, order domain.RentalSort) ([]domain.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.Rental, 0, len(r.s.rentals))
	for _, rental := range r.s.rentals {
		out = append(out, rental)
	}
	sort.Slice(out, func(i, j int) bool {
		if order == domain.SortDateOutAsc {
			return out[i].DateOut.Before(out[j].DateOut)
		}
		return out[i].DateOut.After(out[j].DateOut)
	})
	return out, nil
}

func (r *RentalRepository) FindByID(_ context.Context, id string) (domain.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rental, ok := r.s.rentals[id]
	if !ok {
		return domain.Rental{}, apperror.NewNotFoundError(fmt.Sprintf("Locação com ID %s não encontrada.", id))
	}
	return rental, nil
}

func (r *RentalRepository) UpdateDateOut(_ context.Context, id string, dateOut time.Time) (domain.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rental, ok := r.s.rentals[id]
	if !ok {
		return domain.Rental{}, apperror.NewNotFoundError(fmt.Sprintf("Locação com ID %s não encontrada.", id))
	}
	if !rental.IsOpen() {
		return domain.Rental{}, apperror.NewAlreadyProcessedError("Locação já devolvida não pode ser alterada.")
	}
	rental.DateOut = dateOut
	r.s.rentals[id] = rental
	return rental, nil
}

func (r *RentalRepository) Delete(_ context.Context, id string) (domain.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rental, ok := r.s.rentals[id]
	if !ok {
		return domain.Rental{}, apperror.NewNotFoundError(fmt.Sprintf("Locação com ID %s não encontrada.", id))
	}
	delete(r.s.rentals, id)
	if rental.IsOpen() {
		r.s.restock(rental.Movie.ID)
	}
	return rental, nil
}

// latest devolve a locação mais recente do par. Com open=true considera
// apenas locações abertas. Deve ser chamado com o mutex adquirido.
func (s *Store) latest(customerID, movieID string, open bool) (domain.Rental, bool) {
	var (
		found domain.Rental
		ok    bool
	)
	for _, rental := range s.rentals {
		if rental.Customer.ID != customerID || rental.Movie.ID != movieID {
			continue
		}
		if open && !rental.IsOpen() {
			continue
		}
		if !ok || rental.DateOut.After(found.DateOut) {
			found, ok = rental, true
		}
	}
	return found, ok
}

// restock deve ser chamado com o mutex adquirido.
func (s *Store) restock(movieID string) {
	movie, ok := s.movies[movieID]
	if !ok {
		s.logger.Warn("Filme da locação não existe mais; estoque não reposto.", map[string]interface{}{"movie_id": movieID})
		return
	}
	movie.NumberInStock++
	s.movies[movieID] = movie
}

// UserRepository é a visão de usuários do Store.
type UserRepository struct{ s *Store }

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

func (r *UserRepository) Save(_ context.Context, u domain.User) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.Email = strings.ToLower(u.Email)
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.User{}, apperror.NewDuplicateEmailError("Usuário já registrado.")
		}
	}
	u.ID = newID(u.ID)
	r.s.users[u.ID] = u
	return u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.userByEmail(email)
	if !ok {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email '%s' não encontrado", email))
	}
	return u, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %s não encontrado.", id))
	}
	return u, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %s não encontrado.", id))
	}
	delete(r.s.users, id)
	return u, nil
}

func (r *UserRepository) SetAdmin(_ context.Context, email string, isAdmin bool) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.userByEmail(email)
	if !ok {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email '%s' não encontrado", email))
	}
	u.IsAdmin = isAdmin
	r.s.users[u.ID] = u
	return u, nil
}

func (s *Store) userByEmail(email string) (domain.User, bool) {
	email = strings.ToLower(email)
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return domain.User{}, false
}
