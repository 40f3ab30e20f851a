// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskhub_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// TokenIssuer は署名済みベアラートークンの発行を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenIssuer interface {
	// Issue は指定されたユーザーの署名済みトークンを発行します。
	Issue(userID uint, email string) (string, error)
}

// PasswordHasher はパスワードのハッシュ化と検証を抽象化します。
// 実装はCPUバウンドなbcrypt処理を有界ワーカープールで実行します。
type PasswordHasher interface {
	// Hash は平文パスワードのソルト付きハッシュを生成します。
	Hash(ctx context.Context, plaintext string) (string, error)
	// Compare はハッシュと平文を定数時間で比較し、不一致ならエラーを返します。
	// 不正な形式のハッシュも単なる不一致として扱われます。
	Compare(ctx context.Context, hashed, plaintext string) error
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenIssuer
	hasher PasswordHasher
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenIssuer, hasher PasswordHasher) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

// NormalizeEmail はメールアドレスを小文字・前後空白なしの正規形に変換します。
// 保存時と検索時の両方で同じ正規化を適用します。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録し、トークンを発行します。
// ロールは常にRoleUserで作成されます（リクエストからは設定不可）。
func (u *authUsecase) Signup(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	// パスワード強度を検証
	if err := validatePassword(password); err != nil {
		return nil, "", err
	}

	hashed, err := u.hasher.Hash(ctx, password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:     name,
		Email:    NormalizeEmail(email),
		Password: hashed,
		Role:     entity.RoleUser,
		Active:   true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// dummyHash はユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュです。
// Compareが常に呼ばれることを保証します。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Login はユーザーを認証し、成功時にユーザーとトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
// 無効化されたアカウントはErrAccountDeactivatedで拒否されます。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(email))

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	compareErr := u.hasher.Compare(ctx, passwordHash, password)

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, "", err
		}
		return nil, "", ErrInvalidCredentials
	}

	// 無効化されたアカウントはログイン不可（有効なパスワードでも拒否）
	if !user.Active {
		return nil, "", ErrAccountDeactivated
	}

	token, tokenErr := u.tokens.Issue(user.ID, user.Email)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return user, token, nil
}
