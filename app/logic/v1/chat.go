package v1

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/documind-ai/documind/app/core"
	"github.com/documind-ai/documind/pkg/ai"
	"github.com/documind-ai/documind/pkg/errors"
	"github.com/documind-ai/documind/pkg/timestampmatch"
	"github.com/documind-ai/documind/pkg/types"
	"github.com/documind-ai/documind/pkg/utils"
	"github.com/documind-ai/documind/pkg/vectorindex"
)

type ChatLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewChatLogic(ctx context.Context, core *core.Core) *ChatLogic {
	return &ChatLogic{
		ctx:  ctx,
		core: core,
	}
}

func GenChatSessionRequestKey(sessionID string) string {
	return fmt.Sprintf("chat:session:request:%s", sessionID)
}

type AskResult struct {
	SessionID     string   `json:"session_id"`
	MessageID     string   `json:"message_id"`
	Answer        string   `json:"answer"`
	Model         string   `json:"model,omitempty"`
	Sources       []string `json:"sources"` // retrieved chunk texts, ranked best first
	SourceChunks  int      `json:"source_chunks"`
	SuggestedTime *int     `json:"suggested_time,omitempty"`
}

// Ask runs one full question round: check the index, retrieve context,
// generate, persist the turn, then suggest a playback position for timed
// documents. Nothing is persisted when generation fails.
func (l *ChatLogic) Ask(documentID, userID, question string) (AskResult, error) {
	var result AskResult

	round, err := l.prepareRound(documentID, userID, question)
	if err != nil {
		return result, err
	}
	defer round.unlock()

	resp, err := l.core.Srv().AI().Generator().Generate(l.ctx, ai.BuildQAMessages(round.chunks, round.history, question))
	if err != nil {
		return result, errors.New("ChatLogic.Ask.Generate", "failed to generate answer", err).Kind(errors.KIND_GENERATION_FAILED)
	}

	suggested := l.suggestTimestamp(round.doc, resp.Message, round.chunks)

	msgID, err := l.persistTurn(round.session, userID, question, resp.Message, resp.Model, round.chunks, suggested)
	if err != nil {
		return result, err
	}

	result = AskResult{
		SessionID:     round.session.ID,
		MessageID:     msgID,
		Answer:        resp.Message,
		Model:         resp.Model,
		Sources:       round.chunks,
		SourceChunks:  len(round.chunks),
		SuggestedTime: suggested,
	}
	return result, nil
}

// askRound is everything resolved before generation: the document, the
// caller's session (locked), the retrieved context and the replayable
// history.
type askRound struct {
	doc     *types.Document
	session *types.ChatSession
	chunks  []string
	history []types.QAPair
	unlock  func()
}

func (l *ChatLogic) prepareRound(documentID, userID, question string) (*askRound, error) {
	doc, err := l.core.Store().DocumentStore().GetDocument(l.ctx, documentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("ChatLogic.prepareRound.GetDocument", "document not found", err).
				Code(http.StatusNotFound).Kind(errors.KIND_NOT_FOUND)
		}
		return nil, errors.New("ChatLogic.prepareRound.GetDocument", "failed to get document", err)
	}

	if doc.Status != types.PROCESSING_STATUS_COMPLETED {
		return nil, errors.New("ChatLogic.prepareRound.Status",
			fmt.Sprintf("document is not ready for questions, status: %s", doc.Status), nil).
			Code(http.StatusConflict).Kind(errors.KIND_NOT_INDEXED)
	}

	session, err := l.getOrCreateSession(documentID, userID)
	if err != nil {
		return nil, err
	}

	locker := l.core.Srv().SessionLocker()
	key := GenChatSessionRequestKey(session.ID)
	if ok, err := locker.TryLock(l.ctx, key); err != nil {
		return nil, errors.New("ChatLogic.prepareRound.TryLock", "failed to acquire session lock", err)
	} else if !ok {
		slog.Debug("duplicate question on session", slog.String("session_id", session.ID))
		return nil, errors.New("ChatLogic.prepareRound.TryLock", "a question is already being answered on this session", nil).
			Code(http.StatusConflict).Kind(errors.KIND_CONFLICT)
	}
	unlock := func() {
		if err := locker.Unlock(context.Background(), key); err != nil {
			slog.Error("failed to release session lock", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	chunks, err := l.retrieve(documentID, question)
	if err != nil {
		unlock()
		return nil, err
	}

	history, err := l.loadHistory(session.ID)
	if err != nil {
		unlock()
		return nil, err
	}

	return &askRound{
		doc:     doc,
		session: session,
		chunks:  chunks,
		history: history,
		unlock:  unlock,
	}, nil
}

func (l *ChatLogic) getOrCreateSession(documentID, userID string) (*types.ChatSession, error) {
	session, err := l.core.Store().ChatSessionStore().GetChatSession(l.ctx, documentID, userID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("ChatLogic.getOrCreateSession.GetChatSession", "failed to get chat session", err)
	}
	if session != nil {
		return session, nil
	}

	session = &types.ChatSession{
		ID:         utils.GenUniqIDStr(),
		DocumentID: documentID,
		UserID:     userID,
		CreatedAt:  time.Now().Unix(),
		UpdatedAt:  time.Now().Unix(),
	}
	if err = l.core.Store().ChatSessionStore().Create(l.ctx, *session); err != nil {
		return nil, errors.New("ChatLogic.getOrCreateSession.Create", "failed to create chat session", err)
	}
	return session, nil
}

// retrieve embeds the question and pulls the top chunks from the document's
// index, ranked best first.
func (l *ChatLogic) retrieve(documentID, question string) ([]string, error) {
	embedRes, err := l.core.Srv().AI().Embedder().EmbeddingForQuery(l.ctx, []string{question})
	if err != nil {
		return nil, errors.New("ChatLogic.retrieve.EmbeddingForQuery", "failed to embed question", err)
	}
	if len(embedRes.Data) == 0 {
		return nil, errors.New("ChatLogic.retrieve.EmbeddingForQuery", "embedding provider returned no data", nil)
	}

	matches, err := l.core.VectorIndex().Query(l.ctx, documentID, embedRes.Data[0], l.core.Cfg().RAG.TopK)
	if err != nil {
		if err == vectorindex.ErrNotIndexed {
			return nil, errors.New("ChatLogic.retrieve.Query", "document is not indexed yet", err).
				Code(http.StatusConflict).Kind(errors.KIND_NOT_INDEXED)
		}
		return nil, errors.New("ChatLogic.retrieve.Query", "failed to query vector index", err)
	}

	return lo.Map(matches, func(item vectorindex.Match, _ int) string {
		return item.Content
	}), nil
}

// loadHistory replays the last turns of the session as question/answer
// pairs, oldest first.
func (l *ChatLogic) loadHistory(sessionID string) ([]types.QAPair, error) {
	turns := l.core.Cfg().RAG.HistoryTurns
	msgs, err := l.core.Store().ChatMessageStore().ListLatestSessionMessage(l.ctx, sessionID, uint64(turns*2))
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("ChatLogic.loadHistory.ListLatestSessionMessage", "failed to load chat history", err)
	}

	var (
		pairs   []types.QAPair
		pending string
	)
	for _, msg := range msgs {
		switch msg.Role {
		case types.USER_ROLE_USER:
			pending = msg.Message
		case types.USER_ROLE_ASSISTANT:
			if pending == "" {
				continue
			}
			pairs = append(pairs, types.QAPair{Question: pending, Answer: msg.Message})
			pending = ""
		}
	}
	return pairs, nil
}

// suggestTimestamp maps the answer onto the document timeline. Documents
// without a timeline, missing timestamp data, or an answer below the match
// threshold all yield nil, never an error.
func (l *ChatLogic) suggestTimestamp(doc *types.Document, answer string, chunks []string) *int {
	if !doc.Kind.IsTimed() || answer == ai.FALLBACK_ANSWER {
		return nil
	}

	ts, err := l.core.Store().TimestampStore().GetByDocument(l.ctx, doc.ID)
	if err != nil {
		if err != sql.ErrNoRows {
			slog.Error("failed to load timestamps", slog.String("document_id", doc.ID), slog.String("error", err.Error()))
		}
		return nil
	}

	return timestampmatch.FindBest(answer, chunks, ts.Entries, l.core.Cfg().RAG.MinMatchSimilarity)
}

// persistTurn writes the question and answer as one atomic unit and bumps
// the session counters. Returns the assistant message id.
func (l *ChatLogic) persistTurn(session *types.ChatSession, userID, question, answer, model string, chunks []string, suggested *int) (string, error) {
	chatModel := l.core.Cfg().AI.Models.ChatModel

	total, err := l.core.Store().ChatMessageStore().TotalSessionMessage(l.ctx, session.ID)
	if err != nil {
		return "", errors.New("ChatLogic.persistTurn.TotalSessionMessage", "failed to count session messages", err)
	}

	now := time.Now().Unix()
	questionTokens := int64(utils.NumTokens(question, chatModel))
	answerTokens := int64(utils.NumTokens(answer, chatModel))

	userMsg := &types.ChatMessage{
		ID:         utils.GenUniqIDStr(),
		SessionID:  session.ID,
		DocumentID: session.DocumentID,
		UserID:     userID,
		Role:       types.USER_ROLE_USER,
		Message:    question,
		TokenCount: questionTokens,
		Sequence:   total + 1,
		SendTime:   now,
	}
	assistantMsg := &types.ChatMessage{
		ID:         utils.GenUniqIDStr(),
		SessionID:  session.ID,
		DocumentID: session.DocumentID,
		UserID:     userID,
		Role:       types.USER_ROLE_ASSISTANT,
		Message:    answer,
		TokenCount: answerTokens,
		Sequence:   total + 2,
		SendTime:   now,
		Meta: types.ChatMessageMeta{
			SourceChunks:    chunks,
			Model:           model,
			SuggestedTime:   suggested,
			RetrievedChunks: len(chunks),
		},
	}

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().ChatMessageStore().Create(ctx, userMsg); err != nil {
			return err
		}
		if err := l.core.Store().ChatMessageStore().Create(ctx, assistantMsg); err != nil {
			return err
		}
		return l.core.Store().ChatSessionStore().UpdateTotals(ctx, session.ID, 2, questionTokens+answerTokens)
	})
	if err != nil {
		return "", errors.New("ChatLogic.persistTurn.Transaction", "failed to persist chat turn", err)
	}
	return assistantMsg.ID, nil
}
