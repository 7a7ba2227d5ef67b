package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/tradenet/locnet/backend/pkg/common"
	"github.com/tradenet/locnet/backend/pkg/common/api"
	"github.com/tradenet/locnet/backend/pkg/common/db"
	"github.com/tradenet/locnet/backend/pkg/common/migrations"
	"github.com/tradenet/locnet/backend/pkg/fabricclient"
	"github.com/tradenet/locnet/backend/services/gateway-service/models"
)

const (
	chaincodeName       = "loc-core"
	lettersContract     = "org.locnet.letterofcredit"
	participantContract = "org.locnet.participants"
)

type Service struct {
	db  *sql.DB
	cfg *common.Config

	mu      sync.Mutex
	clients map[string]*fabricclient.Client
}

// clientFor returns the Fabric client enrolled as the given user, connecting
// on first use. Enrollment material lives under CRED_STORE/<username>/.
func (s *Service) clientFor(username string) (*fabricclient.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client, ok := s.clients[username]; ok {
		return client, nil
	}

	client, err := fabricclient.NewClient(
		s.cfg.FabricConfig,
		s.cfg.Channel,
		chaincodeName,
		s.cfg.MSP,
		username,
		filepath.Join(s.cfg.CredStore, username, "cert.pem"),
		filepath.Join(s.cfg.CredStore, username, "key.pem"),
	)
	if err != nil {
		return nil, err
	}

	s.clients[username] = client
	return client, nil
}

func (s *Service) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid request body", "")
		return
	}

	if req.Role != "customer" && req.Role != "bankemployee" && req.Role != "system" {
		api.WriteError(w, http.StatusBadRequest, "invalid_role", "Role must be customer, bankemployee or system", "")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "internal_error", "Failed to hash password", "")
		return
	}

	userID := "user-" + req.Username

	_, err = s.db.Exec(`
		INSERT INTO users (id, username, password_hash, role, org, forename, surname, company)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		userID, req.Username, string(hashedPassword), req.Role, req.Org, req.Forename, req.Surname, req.Company)

	if err != nil {
		log.Printf("Failed to register user: %v", err)
		api.WriteError(w, http.StatusConflict, "user_exists", "Username already exists", "")
		return
	}

	// Register customers and bank employees on chain under their own
	// enrollment. System operators exist at the gateway only.
	if req.Role != "system" {
		client, err := s.clientFor(req.Username)
		if err == nil {
			_, err = client.SubmitTransaction(participantContract + ":RegisterParticipant")
		}
		if err != nil {
			log.Printf("Failed to register participant on chain: %v", err)
			api.WriteError(w, http.StatusBadGateway, "chain_error", "Failed to register participant on the network", "")
			return
		}
	}

	api.WriteSuccess(w, http.StatusCreated, map[string]string{"user_id": userID, "status": "created"})
}

func (s *Service) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid request body", "")
		return
	}

	var passwordHash, role, org string
	err := s.db.QueryRow(`SELECT password_hash, role, org FROM users WHERE username = $1`, req.Username).
		Scan(&passwordHash, &role, &org)
	if err != nil {
		api.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password", "")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)) != nil {
		api.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password", "")
		return
	}

	claims := common.Claims{
		Username: req.Username,
		Role:     role,
		Org:      org,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "internal_error", "Failed to sign token", "")
		return
	}

	api.WriteSuccess(w, http.StatusOK, models.TokenResponse{Token: token})
}

func (s *Service) RegisterBankHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterBankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid request body", "")
		return
	}

	s.submit(w, r, participantContract+":RegisterBank", req.Name)
}

func (s *Service) ApplyHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid request body", "")
		return
	}

	if req.LetterID == "" {
		req.LetterID = "letter-" + uuid.NewString()
	}

	rules, _ := json.Marshal(req.Rules)
	productDetails, _ := json.Marshal(req.ProductDetails)

	client, claims, ok := s.callerClient(w, r)
	if !ok {
		return
	}

	_, err := client.SubmitTransaction(lettersContract+":Apply", req.LetterID, req.BeneficiaryID, string(rules), string(productDetails))
	if err != nil {
		writeChainError(w, claims.Username, err)
		return
	}

	api.WriteSuccess(w, http.StatusCreated, models.ApplyResponse{LetterID: req.LetterID})
}

func (s *Service) GetAllHandler(w http.ResponseWriter, r *http.Request) {
	client, claims, ok := s.callerClient(w, r)
	if !ok {
		return
	}

	result, err := client.EvaluateTransaction(lettersContract + ":GetAll")
	if err != nil {
		writeChainError(w, claims.Username, err)
		return
	}

	api.WriteRaw(w, http.StatusOK, result)
}

func (s *Service) GetHandler(w http.ResponseWriter, r *http.Request) {
	client, claims, ok := s.callerClient(w, r)
	if !ok {
		return
	}

	result, err := client.EvaluateTransaction(lettersContract+":Get", mux.Vars(r)["id"])
	if err != nil {
		writeChainError(w, claims.Username, err)
		return
	}

	api.WriteRaw(w, http.StatusOK, result)
}

func (s *Service) ApproveHandler(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, lettersContract+":Approve", mux.Vars(r)["id"])
}

func (s *Service) RejectHandler(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, lettersContract+":Reject", mux.Vars(r)["id"])
}

func (s *Service) RuleChangeHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RuleChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid request body", "")
		return
	}

	rules, _ := json.Marshal(req.Rules)
	s.submit(w, r, lettersContract+":SuggestRuleChange", mux.Vars(r)["id"], string(rules))
}

func (s *Service) ShipHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ShipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid request body", "")
		return
	}

	evidence, _ := json.Marshal(req.Evidence)
	s.submit(w, r, lettersContract+":MarkAsShipped", mux.Vars(r)["id"], string(evidence))
}

func (s *Service) ReceiveHandler(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, lettersContract+":MarkAsReceived", mux.Vars(r)["id"])
}

func (s *Service) ReadyForPaymentHandler(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, lettersContract+":MarkAsReadyForPayment", mux.Vars(r)["id"])
}

func (s *Service) CloseHandler(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, lettersContract+":Close", mux.Vars(r)["id"])
}

// submit runs a transaction as the authenticated caller and reports success
// with no body.
func (s *Service) submit(w http.ResponseWriter, r *http.Request, txName string, args ...string) {
	client, claims, ok := s.callerClient(w, r)
	if !ok {
		return
	}

	if _, err := client.SubmitTransaction(txName, args...); err != nil {
		writeChainError(w, claims.Username, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) callerClient(w http.ResponseWriter, r *http.Request) (*fabricclient.Client, *common.Claims, bool) {
	claims, ok := common.ClaimsFromContext(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "unauthorized", "Missing credentials", "")
		return nil, nil, false
	}

	client, err := s.clientFor(claims.Username)
	if err != nil {
		log.Printf("Failed to connect as %s: %v", claims.Username, err)
		api.WriteError(w, http.StatusBadGateway, "chain_error", "Failed to reach the network", "")
		return nil, nil, false
	}

	return client, claims, true
}

// writeChainError maps chaincode failures onto HTTP statuses by message; the
// contract errors are stable.
func writeChainError(w http.ResponseWriter, username string, err error) {
	log.Printf("Chaincode call for %s failed: %v", username, err)

	message := err.Error()
	status := http.StatusBadGateway

	switch {
	case strings.Contains(message, "no state exists"):
		status = http.StatusNotFound
	case strings.Contains(message, "already exists"):
		status = http.StatusConflict
	case strings.Contains(message, "not a party"), strings.Contains(message, "invalid client identity role"):
		status = http.StatusForbidden
	case strings.Contains(message, "no longer editable"), strings.Contains(message, "does not allow this transition"):
		status = http.StatusUnprocessableEntity
	}

	api.WriteError(w, status, "chain_error", message, "")
}

func main() {
	cfg := common.LoadConfig()

	database, err := db.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer database.Close()

	if err := migrations.RunMigrations(database, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	svc := &Service{
		db:      database,
		cfg:     cfg,
		clients: make(map[string]*fabricclient.Client),
	}

	r := mux.NewRouter()
	r.HandleFunc("/auth/register", svc.RegisterHandler).Methods("POST")
	r.HandleFunc("/auth/login", svc.LoginHandler).Methods("POST")

	secured := r.NewRoute().Subrouter()
	secured.Use(func(next http.Handler) http.Handler {
		return common.AuthMiddleware([]byte(cfg.JWTSecret), next)
	})

	secured.HandleFunc("/banks", common.RequireRole("system", svc.RegisterBankHandler)).Methods("POST")
	secured.HandleFunc("/letters", svc.ApplyHandler).Methods("POST")
	secured.HandleFunc("/letters", svc.GetAllHandler).Methods("GET")
	secured.HandleFunc("/letters/{id}", svc.GetHandler).Methods("GET")
	secured.HandleFunc("/letters/{id}/approve", svc.ApproveHandler).Methods("POST")
	secured.HandleFunc("/letters/{id}/reject", svc.RejectHandler).Methods("POST")
	secured.HandleFunc("/letters/{id}/rules", svc.RuleChangeHandler).Methods("POST")
	secured.HandleFunc("/letters/{id}/ship", svc.ShipHandler).Methods("POST")
	secured.HandleFunc("/letters/{id}/receive", svc.ReceiveHandler).Methods("POST")
	secured.HandleFunc("/letters/{id}/ready", svc.ReadyForPaymentHandler).Methods("POST")
	secured.HandleFunc("/letters/{id}/close", svc.CloseHandler).Methods("POST")

	log.Printf("Gateway Service running on :%s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
