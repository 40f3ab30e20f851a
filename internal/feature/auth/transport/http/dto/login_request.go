// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は POST /login のリクエストボディです。
// パスワードの最低文字数はサインアップ時にのみ強制されるため、
// ここでは存在チェックのみを行います。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
