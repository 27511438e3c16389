// Package engine はRMCP+メッセージ処理エンジンを実装する。
// Open Session/RAKPハンドシェイクによるセッション確立と、
// 確立済みセッションの認証付きペイロードの検証・応答を担う。
package engine

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/cipher/integrity"
	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/cipher/rakp"
	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/config"
	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/keystore"
	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/logging"
	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/rmcp"
	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/session"
)

// Engine はRMCP+メッセージ処理エンジン
type Engine struct {
	keys      keystore.KeySource
	hsStore   session.HandshakeStore
	sessStore session.SessionStore
	algos     *session.AlgoCache
	cfg       *config.Config
}

// NewEngine は新しいエンジンを生成する
func NewEngine(
	ks keystore.KeySource,
	hs session.HandshakeStore,
	ss session.SessionStore,
	algos *session.AlgoCache,
	cfg *config.Config,
) *Engine {
	return &Engine{
		keys:      ks,
		hsStore:   hs,
		sessStore: ss,
		algos:     algos,
		cfg:       cfg,
	}
}

// Process はRMCP+パケットを処理し、応答データグラムを返す。
// 応答しない（破棄する）場合はnilを返す。
func (e *Engine) Process(ctx context.Context, traceID string, pkt *rmcp.Packet) ([]byte, error) {
	if pkt.Authenticated() {
		return e.handleSessionPayload(ctx, traceID, pkt)
	}

	switch pkt.PayloadType {
	case rmcp.PayloadTypeOpenSessionRequest:
		return e.handleOpenSession(ctx, traceID, pkt)
	case rmcp.PayloadTypeRAKPMessage1:
		return e.handleRAKP1(ctx, traceID, pkt)
	case rmcp.PayloadTypeRAKPMessage3:
		return e.handleRAKP3(ctx, traceID, pkt)
	default:
		slog.Warn("未対応のペイロード種別",
			"event_id", "PKT_UNKNOWN_PAYLOAD",
			"trace_id", traceID,
			"payload_type", pkt.PayloadType,
		)
		return nil, nil
	}
}

// handleOpenSession はOpen Session Requestを処理する
func (e *Engine) handleOpenSession(ctx context.Context, traceID string, pkt *rmcp.Packet) ([]byte, error) {
	req, err := rmcp.ParseOpenSessionRequest(pkt.Payload)
	if err != nil {
		slog.Warn("Open Session Requestパース失敗",
			"event_id", "OPEN_SESSION_PARSE_ERR",
			"trace_id", traceID,
			"error", err,
		)
		return nil, nil
	}

	// アルゴリズム交渉: 認証はRAKP-HMAC-SHA1のみ、機密性はNoneのみ
	if req.AuthAlg != rmcp.AuthAlgorithmRAKPHMACSHA1 {
		return e.openSessionError(req, rmcp.StatusInvalidAuthAlgorithm)
	}
	if !integrity.Algorithm(req.IntegAlg).Supported() {
		return e.openSessionError(req, rmcp.StatusInvalidIntegAlgorithm)
	}
	if req.ConfAlg != 0x00 {
		return e.openSessionError(req, rmcp.StatusIllegalParameter)
	}

	sidMS, err := session.GenerateSessionID()
	if err != nil {
		return nil, err
	}

	hs := &session.HandshakeContext{
		SessionIDRC: req.SessionIDRC,
		AuthAlg:     req.AuthAlg,
		IntegAlg:    req.IntegAlg,
		Stage:       session.StageOpen,
		Role:        req.MaxPrivilege,
	}
	if err := e.hsStore.Create(ctx, sidMS, hs); err != nil {
		return nil, err
	}

	slog.Info("Open Session受理",
		"event_id", "OPEN_SESSION_OK",
		"trace_id", traceID,
		"sid_rc", req.SessionIDRC,
		"sid_ms", sidMS,
		"integ_alg", integrity.Algorithm(req.IntegAlg).String(),
	)

	payload := rmcp.BuildOpenSessionResponse(
		req.MessageTag, rmcp.StatusNoErrors, req.MaxPrivilege,
		req.SessionIDRC, sidMS,
		req.AuthAlg, req.IntegAlg, req.ConfAlg,
	)
	return rmcp.Marshal(rmcp.PayloadTypeOpenSessionResponse, 0, 0, payload, nil)
}

// openSessionError はOpen Sessionエラー応答を組み立てる
func (e *Engine) openSessionError(req *rmcp.OpenSessionRequest, status uint8) ([]byte, error) {
	payload := rmcp.BuildOpenSessionResponse(req.MessageTag, status, 0, req.SessionIDRC, 0, 0, 0, 0)
	return rmcp.Marshal(rmcp.PayloadTypeOpenSessionResponse, 0, 0, payload, nil)
}

// handleRAKP1 はRAKP Message 1を処理し、RAKP Message 2を返す
func (e *Engine) handleRAKP1(ctx context.Context, traceID string, pkt *rmcp.Packet) ([]byte, error) {
	msg, err := rmcp.ParseRAKPMessage1(pkt.Payload)
	if err != nil {
		slog.Warn("RAKP1パース失敗",
			"event_id", "RAKP1_PARSE_ERR",
			"trace_id", traceID,
			"error", err,
		)
		return nil, nil
	}

	hs, err := e.hsStore.Get(ctx, msg.SessionIDMS)
	if err != nil {
		if errors.Is(err, session.ErrHandshakeNotFound) {
			slog.Warn("RAKP1のセッションIDが未知",
				"event_id", "RAKP1_UNKNOWN_SID",
				"trace_id", traceID,
				"sid_ms", msg.SessionIDMS,
			)
			return e.rakp2Error(msg, hsSessionIDRC(hs), rmcp.StatusInvalidSessionID)
		}
		return nil, err
	}
	if hs.Stage != session.StageOpen {
		return e.rakp2Error(msg, hs.SessionIDRC, rmcp.StatusInvalidSessionID)
	}

	// 鍵素材の解決
	userKey, err := e.keys.GetUserKey(keystore.WithTraceID(ctx, traceID), msg.Username)
	if err != nil {
		var apiErr *keystore.APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			slog.Warn("未登録ユーザーのRAKP1",
				"event_id", "RAKP1_UNKNOWN_USER",
				"trace_id", traceID,
				"username", msg.Username,
			)
			return e.rakp2Error(msg, hs.SessionIDRC, rmcp.StatusUnauthorizedName)
		}
		slog.Error("鍵素材の取得失敗",
			"event_id", "KEYSTORE_ERR",
			"trace_id", traceID,
			"error", err,
		)
		return e.rakp2Error(msg, hs.SessionIDRC, rmcp.StatusInsufficientResources)
	}

	// 特権レベル確認
	if msg.MaxPrivilege > userKey.MaxRole {
		return e.rakp2Error(msg, hs.SessionIDRC, rmcp.StatusUnauthorizedRole)
	}

	randMS := make([]byte, rmcp.RandomLength)
	if _, err := rand.Read(randMS); err != nil {
		return nil, err
	}

	authCode := rakp.Message2AuthCode(
		userKey.KUID,
		hs.SessionIDRC, msg.SessionIDMS,
		msg.RandRC, randMS, e.cfg.GUID(),
		msg.MaxPrivilege, msg.Username,
	)

	updates := map[string]any{
		"stage":    session.StageRAKP2,
		"username": msg.Username,
		"role":     msg.MaxPrivilege,
		"rand_rc":  hex.EncodeToString(msg.RandRC),
		"rand_ms":  hex.EncodeToString(randMS),
		"k_uid":    hex.EncodeToString(userKey.KUID),
		"k_g":      hex.EncodeToString(userKey.KG),
	}
	if err := e.hsStore.Update(ctx, msg.SessionIDMS, updates); err != nil {
		return nil, err
	}

	slog.Info("RAKP2送信",
		"event_id", "RAKP2_SENT",
		"trace_id", traceID,
		"sid_ms", msg.SessionIDMS,
		"username", msg.Username,
	)

	payload := rmcp.BuildRAKPMessage2(
		msg.MessageTag, rmcp.StatusNoErrors, hs.SessionIDRC,
		randMS, e.cfg.GUID(), authCode,
	)
	return rmcp.Marshal(rmcp.PayloadTypeRAKPMessage2, 0, 0, payload, nil)
}

// rakp2Error はRAKP Message 2エラー応答を組み立てる
func (e *Engine) rakp2Error(msg *rmcp.RAKPMessage1, sidRC uint32, status uint8) ([]byte, error) {
	payload := rmcp.BuildRAKPMessage2(msg.MessageTag, status, sidRC, nil, nil, nil)
	return rmcp.Marshal(rmcp.PayloadTypeRAKPMessage2, 0, 0, payload, nil)
}

// hsSessionIDRC はhsがnilでも安全にSessionIDRCを返す
func hsSessionIDRC(hs *session.HandshakeContext) uint32 {
	if hs == nil {
		return 0
	}
	return hs.SessionIDRC
}

// handleRAKP3 はRAKP Message 3を検証し、RAKP Message 4とセッション確立を行う
func (e *Engine) handleRAKP3(ctx context.Context, traceID string, pkt *rmcp.Packet) ([]byte, error) {
	msg, err := rmcp.ParseRAKPMessage3(pkt.Payload)
	if err != nil {
		slog.Warn("RAKP3パース失敗",
			"event_id", "RAKP3_PARSE_ERR",
			"trace_id", traceID,
			"error", err,
		)
		return nil, nil
	}

	hs, err := e.hsStore.Get(ctx, msg.SessionIDMS)
	if err != nil {
		if errors.Is(err, session.ErrHandshakeNotFound) {
			return e.rakp4Error(msg, 0, rmcp.StatusInvalidSessionID)
		}
		return nil, err
	}
	if hs.Stage != session.StageRAKP2 {
		return e.rakp4Error(msg, hs.SessionIDRC, rmcp.StatusInvalidSessionID)
	}

	// リモートコンソール側がRAKP2を拒否した場合はハンドシェイクを破棄する
	if msg.Status != rmcp.StatusNoErrors {
		slog.Warn("リモートコンソールがRAKP2を拒否",
			"event_id", "RAKP3_REMOTE_ABORT",
			"trace_id", traceID,
			"sid_ms", msg.SessionIDMS,
			"status", msg.Status,
		)
		_ = e.hsStore.Delete(ctx, msg.SessionIDMS)
		return nil, nil
	}

	kuid, err := hex.DecodeString(hs.KUID)
	if err != nil {
		return nil, session.ErrHandshakeInvalid
	}
	randRC, err := hex.DecodeString(hs.RandRC)
	if err != nil {
		return nil, session.ErrHandshakeInvalid
	}
	randMS, err := hex.DecodeString(hs.RandMS)
	if err != nil {
		return nil, session.ErrHandshakeInvalid
	}

	// RAKP3認証コード検証（定数時間比較）
	if !rakp.VerifyMessage3(kuid, randMS, hs.SessionIDRC, hs.Role, hs.Username, msg.AuthCode) {
		slog.Warn("RAKP3認証コード不一致",
			"event_id", "RAKP3_AUTH_FAIL",
			"trace_id", traceID,
			"sid_ms", msg.SessionIDMS,
			"username", hs.Username,
		)
		_ = e.hsStore.Delete(ctx, msg.SessionIDMS)
		return e.rakp4Error(msg, hs.SessionIDRC, rmcp.StatusInvalidICV)
	}

	// SIK導出。BMC鍵（K_G）未設定のone-key運用ではK_UIDを使用する。
	kg := kuid
	if hs.KG != "" {
		if kg, err = hex.DecodeString(hs.KG); err != nil {
			return nil, session.ErrHandshakeInvalid
		}
	}
	sik := rakp.ComputeSIK(kg, randRC, randMS, hs.Role, hs.Username)

	algo, err := integrity.New(integrity.Algorithm(hs.IntegAlg), sik)
	if err != nil {
		return nil, err
	}

	sess := &session.Session{
		SessionIDRC: hs.SessionIDRC,
		Username:    hs.Username,
		Role:        hs.Role,
		IntegAlg:    hs.IntegAlg,
		SIK:         hex.EncodeToString(sik),
		StartTime:   time.Now().Unix(),
	}
	if err := e.sessStore.Create(ctx, msg.SessionIDMS, sess); err != nil {
		return nil, err
	}
	e.algos.Put(msg.SessionIDMS, algo)
	_ = e.hsStore.Delete(ctx, msg.SessionIDMS)

	slog.Info("セッション確立",
		"event_id", "SESS_ESTABLISHED",
		"trace_id", traceID,
		"sid_ms", msg.SessionIDMS,
		"username", hs.Username,
		"integ_alg", integrity.Algorithm(hs.IntegAlg).String(),
		"sik", logging.MaskHex(sess.SIK, e.cfg.LogMaskKeys),
	)

	icv := rakp.Message4ICV(sik, randRC, msg.SessionIDMS, e.cfg.GUID())
	payload := rmcp.BuildRAKPMessage4(msg.MessageTag, rmcp.StatusNoErrors, hs.SessionIDRC, icv)
	return rmcp.Marshal(rmcp.PayloadTypeRAKPMessage4, 0, 0, payload, nil)
}

// rakp4Error はRAKP Message 4エラー応答を組み立てる
func (e *Engine) rakp4Error(msg *rmcp.RAKPMessage3, sidRC uint32, status uint8) ([]byte, error) {
	payload := rmcp.BuildRAKPMessage4(msg.MessageTag, status, sidRC, nil)
	return rmcp.Marshal(rmcp.PayloadTypeRAKPMessage4, 0, 0, payload, nil)
}

// handleSessionPayload は確立済みセッションの認証付きパケットを処理する
func (e *Engine) handleSessionPayload(ctx context.Context, traceID string, pkt *rmcp.Packet) ([]byte, error) {
	sess, err := e.sessStore.Get(ctx, pkt.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			slog.Warn("未知セッションのパケット",
				"event_id", "PKT_UNKNOWN_SESSION",
				"trace_id", traceID,
				"sid_ms", pkt.SessionID,
			)
			return nil, nil
		}
		return nil, err
	}

	algo, err := e.sessionAlgo(pkt.SessionID, sess)
	if err != nil {
		return nil, err
	}

	// AuthCode検証。不一致のパケットは応答せず破棄する。
	ok, err := pkt.VerifyIntegrity(algo)
	if err != nil {
		return nil, err
	}
	if !ok {
		slog.Warn("AuthCode検証失敗",
			"event_id", "PKT_AUTH_FAIL",
			"trace_id", traceID,
			"sid_ms", pkt.SessionID,
		)
		return nil, nil
	}

	// リプレイ保護: 受信シーケンス番号は単調増加でなければならない
	if pkt.Sequence <= sess.InboundSeq {
		slog.Warn("シーケンス番号の巻き戻り",
			"event_id", "PKT_SEQ_REPLAY",
			"trace_id", traceID,
			"sid_ms", pkt.SessionID,
			"seq", pkt.Sequence,
			"last_seq", sess.InboundSeq,
		)
		return nil, nil
	}

	outSeq := sess.OutboundSeq + 1
	if err := e.sessStore.UpdateSequences(ctx, pkt.SessionID, pkt.Sequence, outSeq); err != nil {
		return nil, err
	}

	if pkt.PayloadType != rmcp.PayloadTypeIPMI {
		return nil, nil
	}
	return e.handleIPMI(ctx, traceID, pkt, sess, algo, outSeq)
}

// sessionAlgo はセッションのIntegrityインスタンスを取得する。
// キャッシュミス時（プロセス再起動後など）はSIKから再構築する。
func (e *Engine) sessionAlgo(sidMS uint32, sess *session.Session) (*integrity.Integrity, error) {
	if algo, ok := e.algos.Get(sidMS); ok {
		return algo, nil
	}

	sik, err := hex.DecodeString(sess.SIK)
	if err != nil {
		return nil, session.ErrHandshakeInvalid
	}
	algo, err := integrity.New(integrity.Algorithm(sess.IntegAlg), sik)
	if err != nil {
		return nil, err
	}
	e.algos.Put(sidMS, algo)
	return algo, nil
}

// handleIPMI はIPMIペイロードに応答する
func (e *Engine) handleIPMI(ctx context.Context, traceID string, pkt *rmcp.Packet, sess *session.Session, algo *integrity.Integrity, outSeq uint32) ([]byte, error) {
	req := parseIPMIRequest(pkt.Payload)
	if req == nil {
		slog.Warn("IPMIメッセージ不正",
			"event_id", "IPMI_PARSE_ERR",
			"trace_id", traceID,
			"sid_ms", pkt.SessionID,
		)
		return nil, nil
	}

	var resp []byte
	closeSession := false

	switch {
	case req.netFn == netFnApp && req.cmd == cmdGetDeviceID:
		resp = buildIPMIResponse(req, completionOK, deviceIDResponse)

	case req.netFn == netFnApp && req.cmd == cmdCloseSession:
		if len(req.data) < 4 || binary.LittleEndian.Uint32(req.data[:4]) != pkt.SessionID {
			resp = buildIPMIResponse(req, completionInvalidCmd, nil)
			break
		}
		resp = buildIPMIResponse(req, completionOK, nil)
		closeSession = true

	default:
		resp = buildIPMIResponse(req, completionInvalidCmd, nil)
	}

	// 応答の組み立てはセッション破棄（K1ゼロ化）より先に行う
	out, err := rmcp.Marshal(rmcp.PayloadTypeIPMI, sess.SessionIDRC, outSeq, resp, algo)
	if err != nil {
		return nil, err
	}

	if closeSession {
		if err := e.sessStore.Delete(ctx, pkt.SessionID); err != nil {
			return nil, err
		}
		e.algos.Delete(pkt.SessionID)
		slog.Info("セッション終了",
			"event_id", "SESS_CLOSED",
			"trace_id", traceID,
			"sid_ms", pkt.SessionID,
			"username", sess.Username,
		)
	}
	return out, nil
}
