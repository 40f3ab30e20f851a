// Package usecase はusersフィーチャー（プロフィール管理）のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"taskhub_backend/internal/feature/auth/domain/entity"
	authusecase "taskhub_backend/internal/feature/auth/usecase"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// UserRepository はプロフィール操作に必要な永続化層を抽象化します。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type UserRepository interface {
	// FindByID はIDでユーザーを取得します。存在しない場合はエラーを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByEmail はメールアドレスでユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpdateFields は指定フィールドのみを原子的に更新します。
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error

	// List は全ユーザーを取得します。管理者用です。
	List(ctx context.Context) ([]entity.User, error)
}

// PasswordHasher はパスワードのハッシュ化と検証を抽象化します。
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Compare(ctx context.Context, hashed, plaintext string) error
}

// ProfilePatch はプロフィールの部分更新です。nilのフィールドは変更されません。
// Avatarは空文字列の設定（削除）を区別するためポインタで保持します。
type ProfilePatch struct {
	Name   *string
	Email  *string
	Avatar *string
}

// userUsecase はプロフィール管理のユースケースを実装します。
type userUsecase struct {
	users  UserRepository
	hasher PasswordHasher
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, hasher PasswordHasher) *userUsecase {
	return &userUsecase{users: users, hasher: hasher}
}

// GetProfile は自分のプロフィールを取得します。
func (u *userUsecase) GetProfile(ctx context.Context, id uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile は名前・メールアドレス・アバターを更新します。
// メールアドレス変更時は他アカウントとの重複を拒否します。
func (u *userUsecase) UpdateProfile(ctx context.Context, id uint, patch ProfilePatch) (*entity.User, error) {
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Email != nil {
		email := authusecase.NormalizeEmail(*patch.Email)
		// 他のアカウントが既に使用しているメールアドレスは拒否
		existing, err := u.users.FindByEmail(ctx, email)
		if err == nil && existing.ID != id {
			return nil, ErrEmailAlreadyExists
		}
		if err != nil && !errors.Is(err, authusecase.ErrUserNotFound) {
			return nil, err
		}
		fields["email"] = email
	}
	if patch.Avatar != nil {
		fields["avatar"] = *patch.Avatar
	}
	if len(fields) == 0 {
		return nil, ErrEmptyPatch
	}

	if err := u.users.UpdateFields(ctx, id, fields); err != nil {
		// 事前チェックと更新の間に同じメールアドレスが登録された場合
		if errors.Is(err, authusecase.ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		if errors.Is(err, authusecase.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u.GetProfile(ctx, id)
}

// ChangePassword は現在のパスワードを検証した上で新しいパスワードへ更新します。
func (u *userUsecase) ChangePassword(ctx context.Context, id uint, current, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := u.hasher.Compare(ctx, user.Password, current); err != nil {
		return ErrWrongPassword
	}

	hashed, err := u.hasher.Hash(ctx, newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return u.users.UpdateFields(ctx, id, map[string]any{"password": hashed})
}

// DeactivateAccount はアカウントをソフト削除（active=false）します。
// 無効化以降のリクエストは、未失効のトークンでも認証ミドルウェアで拒否されます。
func (u *userUsecase) DeactivateAccount(ctx context.Context, id uint) error {
	err := u.users.UpdateFields(ctx, id, map[string]any{"active": false})
	if errors.Is(err, authusecase.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return err
}

// ListUsers は全ユーザーの一覧を返します。管理者ロール専用です。
func (u *userUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	return u.users.List(ctx)
}
