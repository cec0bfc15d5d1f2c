package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"

	"samity/internal/domain/entity"
	"samity/internal/domain/repository"
	"samity/internal/domain/service"

	"github.com/google/uuid"
)

// memoryStore backs the in-memory repository fakes used across the service
// tests. A single store doubles as the transaction manager and the factory;
// rollback fidelity is covered by the postgres layer, not here.
type memoryStore struct {
	accounts    map[uuid.UUID]*entity.Account
	credentials map[string]*entity.Credential // keyed by provider+"/"+identifier
	tokens      map[string]*entity.RefreshToken
	profiles    map[uuid.UUID]*entity.Profile
	statuses    map[uuid.UUID]*entity.AccountStatus
	defs        map[uuid.UUID]*entity.ProfileFieldDefinition
	values      map[string]*entity.ProfileFieldValue // keyed by account+"/"+field
	notifs      []*entity.Notification
	articles    []*entity.Article
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accounts:    make(map[uuid.UUID]*entity.Account),
		credentials: make(map[string]*entity.Credential),
		tokens:      make(map[string]*entity.RefreshToken),
		profiles:    make(map[uuid.UUID]*entity.Profile),
		statuses:    make(map[uuid.UUID]*entity.AccountStatus),
		defs:        make(map[uuid.UUID]*entity.ProfileFieldDefinition),
		values:      make(map[string]*entity.ProfileFieldValue),
	}
}

// Execute satisfies repository.TransactionManager.
func (s *memoryStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s)
}

func (s *memoryStore) AccountRepo() repository.AccountRepository { return (*fakeAccountRepo)(s) }
func (s *memoryStore) AuthRepo() repository.AuthRepository       { return (*fakeAuthRepo)(s) }
func (s *memoryStore) ProfileRepo() repository.ProfileRepository { return (*fakeProfileRepo)(s) }
func (s *memoryStore) StatusRepo() repository.StatusRepository   { return (*fakeStatusRepo)(s) }
func (s *memoryStore) SchemaRepo() repository.SchemaRepository   { return (*fakeSchemaRepo)(s) }
func (s *memoryStore) ContentRepo() repository.ContentRepository { return (*fakeContentRepo)(s) }

// seedAccount inserts an account with optional profile, returning it.
func (s *memoryStore) seedAccount(username, email string, active, admin bool) *entity.Account {
	account := &entity.Account{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		IsActive:  active,
		IsAdmin:   admin,
		CreatedAt: time.Now(),
	}
	s.accounts[account.ID] = account

	return account
}

func (s *memoryStore) seedProfile(accountID uuid.UUID, role entity.Role) *entity.Profile {
	profile := &entity.Profile{
		AccountID:   accountID,
		Name:        "Seeded Member",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Role:        role,
	}
	s.profiles[accountID] = profile
	if account, ok := s.accounts[accountID]; ok {
		account.Profile = profile
	}

	return profile
}

// --- repository fakes ---

type fakeAccountRepo memoryStore

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	account.Profile = r.profiles[id]
	account.Status = r.statuses[id]

	return account, nil
}

func (r *fakeAccountRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Account, error) {
	found := make([]*entity.Account, 0, len(ids))
	for _, id := range ids {
		if account, err := r.FindByID(ctx, id); err == nil {
			found = append(found, account)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].CreatedAt.Before(found[j].CreatedAt) })

	return found, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			account.Profile = r.profiles[account.ID]

			return account, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) FindByUsername(_ context.Context, username string) (*entity.Account, error) {
	for _, account := range r.accounts {
		if account.Username == username {
			account.Profile = r.profiles[account.ID]

			return account, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) List(_ context.Context) ([]*entity.Account, error) {
	listed := make([]*entity.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		account.Profile = r.profiles[account.ID]
		account.Status = r.statuses[account.ID]
		listed = append(listed, account)
	}
	sort.Slice(listed, func(i, j int) bool { return listed[i].CreatedAt.Before(listed[j].CreatedAt) })

	return listed, nil
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	r.accounts[account.ID] = account

	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *entity.Account) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	r.accounts[account.ID] = account

	return nil
}

type fakeAuthRepo memoryStore

func credentialKey(provider, identifier string) string {
	return provider + "/" + identifier
}

func (r *fakeAuthRepo) CreateCredential(_ context.Context, cred *entity.Credential) error {
	cred.ID = uuid.New()
	r.credentials[credentialKey(cred.Provider, cred.Identifier)] = cred

	return nil
}

func (r *fakeAuthRepo) FindCredential(_ context.Context, provider, identifier string) (*entity.Credential, error) {
	cred, ok := r.credentials[credentialKey(provider, identifier)]
	if !ok {
		return nil, repository.ErrCredentialNotFound
	}

	return cred, nil
}

func (r *fakeAuthRepo) CreateRefreshToken(_ context.Context, token *entity.RefreshToken) error {
	token.ID = uuid.New()
	token.CreatedAt = time.Now()
	r.tokens[token.TokenHash] = token

	return nil
}

func (r *fakeAuthRepo) FindRefreshTokenByHash(_ context.Context, hash string) (*entity.RefreshToken, error) {
	token, ok := r.tokens[hash]
	if !ok {
		return nil, repository.ErrTokenNotFound
	}

	return token, nil
}

func (r *fakeAuthRepo) DeleteRefreshTokenByHash(_ context.Context, hash string) error {
	if _, ok := r.tokens[hash]; !ok {
		return repository.ErrTokenNotFound
	}
	delete(r.tokens, hash)

	return nil
}

type fakeProfileRepo memoryStore

func (r *fakeProfileRepo) FindByAccount(_ context.Context, accountID uuid.UUID) (*entity.Profile, error) {
	profile, ok := r.profiles[accountID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}

	return profile, nil
}

func (r *fakeProfileRepo) Save(_ context.Context, profile *entity.Profile) error {
	if existing, ok := r.profiles[profile.AccountID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = time.Now()
	}
	profile.UpdatedAt = time.Now()
	r.profiles[profile.AccountID] = profile
	if account, ok := r.accounts[profile.AccountID]; ok {
		account.Profile = profile
	}

	return nil
}

type fakeStatusRepo memoryStore

func (r *fakeStatusRepo) GetOrCreate(_ context.Context, accountID uuid.UUID) (*entity.AccountStatus, error) {
	if status, ok := r.statuses[accountID]; ok {
		return status, nil
	}
	if _, ok := r.accounts[accountID]; !ok {
		return nil, repository.ErrAccountNotFound
	}

	status := &entity.AccountStatus{
		AccountID: accountID,
		Status:    entity.StatusActionRequired,
		CreatedAt: time.Now(),
	}
	r.statuses[accountID] = status

	return status, nil
}

func (r *fakeStatusRepo) ListByStatus(_ context.Context, status entity.Status) ([]*entity.AccountStatus, error) {
	var listed []*entity.AccountStatus
	for _, record := range r.statuses {
		if record.Status == status {
			listed = append(listed, record)
		}
	}

	return listed, nil
}

func (r *fakeStatusRepo) Update(_ context.Context, status *entity.AccountStatus) error {
	if _, ok := r.statuses[status.AccountID]; !ok {
		return repository.ErrStatusNotFound
	}
	status.UpdatedAt = time.Now()
	r.statuses[status.AccountID] = status

	return nil
}

type fakeSchemaRepo memoryStore

func valueKey(accountID, fieldID uuid.UUID) string {
	return accountID.String() + "/" + fieldID.String()
}

func (r *fakeSchemaRepo) ListDefinitions(_ context.Context, activeOnly bool) ([]*entity.ProfileFieldDefinition, error) {
	var listed []*entity.ProfileFieldDefinition
	for _, def := range r.defs {
		if activeOnly && !def.IsActive {
			continue
		}
		listed = append(listed, def)
	}
	sort.Slice(listed, func(i, j int) bool { return listed[i].DisplayOrder < listed[j].DisplayOrder })

	return listed, nil
}

func (r *fakeSchemaRepo) FindDefinitionByID(_ context.Context, id uuid.UUID) (*entity.ProfileFieldDefinition, error) {
	def, ok := r.defs[id]
	if !ok {
		return nil, repository.ErrFieldDefinitionNotFound
	}

	return def, nil
}

func (r *fakeSchemaRepo) FindDefinitionByName(_ context.Context, name string) (*entity.ProfileFieldDefinition, error) {
	for _, def := range r.defs {
		if def.Name == name {
			return def, nil
		}
	}

	return nil, repository.ErrFieldDefinitionNotFound
}

func (r *fakeSchemaRepo) CreateDefinition(_ context.Context, def *entity.ProfileFieldDefinition) error {
	for _, existing := range r.defs {
		if existing.Name == def.Name {
			return repository.ErrDuplicateFieldName
		}
	}
	def.ID = uuid.New()
	def.CreatedAt = time.Now()
	r.defs[def.ID] = def

	return nil
}

func (r *fakeSchemaRepo) UpdateDefinition(_ context.Context, def *entity.ProfileFieldDefinition) error {
	if _, ok := r.defs[def.ID]; !ok {
		return repository.ErrFieldDefinitionNotFound
	}
	for _, existing := range r.defs {
		if existing.ID != def.ID && existing.Name == def.Name {
			return repository.ErrDuplicateFieldName
		}
	}
	def.UpdatedAt = time.Now()
	r.defs[def.ID] = def

	return nil
}

func (r *fakeSchemaRepo) UpsertValue(_ context.Context, value *entity.ProfileFieldValue) error {
	key := valueKey(value.AccountID, value.FieldID)
	if existing, ok := r.values[key]; ok {
		value.ID = existing.ID
		value.CreatedAt = existing.CreatedAt
	} else {
		value.ID = uuid.New()
		value.CreatedAt = time.Now()
	}
	value.UpdatedAt = time.Now()
	r.values[key] = value

	return nil
}

func (r *fakeSchemaRepo) ListValues(_ context.Context, accountID uuid.UUID) ([]*entity.ProfileFieldValue, error) {
	var listed []*entity.ProfileFieldValue
	for key, value := range r.values {
		if strings.HasPrefix(key, accountID.String()+"/") {
			listed = append(listed, value)
		}
	}

	return listed, nil
}

type fakeContentRepo memoryStore

func (r *fakeContentRepo) CreateNotification(_ context.Context, notification *entity.Notification) error {
	notification.ID = uuid.New()
	notification.CreatedAt = time.Now()
	r.notifs = append(r.notifs, notification)

	return nil
}

func (r *fakeContentRepo) ListNotificationsByAccount(_ context.Context, accountID uuid.UUID) ([]*entity.Notification, error) {
	var listed []*entity.Notification
	for _, notification := range r.notifs {
		if notification.AccountID == accountID {
			listed = append(listed, notification)
		}
	}
	sort.Slice(listed, func(i, j int) bool { return listed[i].CreatedAt.After(listed[j].CreatedAt) })

	return listed, nil
}

func (r *fakeContentRepo) CreateArticle(_ context.Context, article *entity.Article) error {
	article.ID = uuid.New()
	article.CreatedAt = time.Now()
	r.articles = append(r.articles, article)

	return nil
}

func (r *fakeContentRepo) FindLatestArticle(_ context.Context) (*entity.Article, error) {
	if len(r.articles) == 0 {
		return nil, repository.ErrArticleNotFound
	}
	latest := r.articles[0]
	for _, article := range r.articles[1:] {
		if article.CreatedAt.After(latest.CreatedAt) {
			latest = article
		}
	}

	return latest, nil
}

// --- service fakes ---

// fakeHasher is a transparent stand-in for the bcrypt hasher.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Check(password, hash string) bool     { return hash == "hashed:"+password }

// fakeTokenService issues deterministic tokens tagged by type.
type fakeTokenService struct {
	counter int
}

func (s *fakeTokenService) GenerateTokens(accountID uuid.UUID, _ []string) (string, string, error) {
	s.counter++

	return "access-" + accountID.String(), "refresh-" + accountID.String() + "-" + string(rune('a'+s.counter)), nil
}

func (s *fakeTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	return parseFakeToken(tokenString, "access-")
}

func (s *fakeTokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	return parseFakeToken(tokenString, "refresh-")
}

func (s *fakeTokenService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

func (s *fakeTokenService) GetRefreshTokenDuration() time.Duration { return time.Hour }

func parseFakeToken(tokenString, prefix string) (*service.Claims, error) {
	if !strings.HasPrefix(tokenString, prefix) {
		return nil, repository.ErrTokenNotFound
	}
	raw := strings.TrimPrefix(tokenString, prefix)
	if idx := strings.LastIndex(raw, "-"); idx > 0 && prefix == "refresh-" {
		raw = raw[:idx]
	}
	accountID, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}

	return &service.Claims{AccountID: accountID, Type: strings.TrimSuffix(prefix, "-")}, nil
}

// fakeActivation mirrors the production ref and token shapes without HMAC.
type fakeActivation struct{}

func (fakeActivation) EncodeRef(accountID uuid.UUID) string { return "ref-" + accountID.String() }

func (fakeActivation) DecodeRef(ref string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimPrefix(ref, "ref-"))
}

func (fakeActivation) MakeToken(accountID uuid.UUID) string { return "tok-" + accountID.String() }

func (fakeActivation) CheckToken(accountID uuid.UUID, token string) bool {
	return token == "tok-"+accountID.String()
}

var errFakeFailure = errors.New("induced failure")

// fakeNormalizer passes decodable input through and rejects a marker payload.
type fakeNormalizer struct{}

func (fakeNormalizer) Normalize(src []byte) ([]byte, error) {
	if strings.Contains(string(src), "bad") {
		return nil, errFakeFailure
	}

	return append([]byte("jpeg:"), src...), nil
}

// fakeMediaStore records writes in memory.
type fakeMediaStore struct {
	objects map[string][]byte
	fail    bool
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{objects: make(map[string][]byte)}
}

func (s *fakeMediaStore) Put(_ context.Context, key string, data []byte, _ string) error {
	if s.fail {
		return errFakeFailure
	}
	s.objects[key] = data

	return nil
}

func (s *fakeMediaStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, errFakeFailure
	}

	return data, nil
}

func (s *fakeMediaStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)

	return nil
}

func (s *fakeMediaStore) URL(key string) string { return "/media/" + key }

// fakeMemberCard returns a marker PNG payload.
type fakeMemberCard struct{}

func (fakeMemberCard) GenerateCardQR(accountID uuid.UUID) ([]byte, error) {
	return []byte("png-" + accountID.String()), nil
}

func (fakeMemberCard) ParseCardQR(qrData string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimPrefix(qrData, "png-"))
}
