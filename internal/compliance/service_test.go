package compliance_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hliosone/Permix/internal/compliance"
	"github.com/hliosone/Permix/internal/ledger"
	"github.com/hliosone/Permix/internal/trading/mocks"
	"github.com/hliosone/Permix/internal/txbuilder"
	"github.com/hliosone/Permix/internal/verification"
	vmocks "github.com/hliosone/Permix/internal/verification/mocks"
	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
)

const (
	issuer = "rIssuer111111111111111111111111111"
	alice  = "rAlice1111111111111111111111111111"
)

// fastClock makes the poll loop spin without wall-clock waits.
type fastClock struct {
	now time.Time
}

func (f *fastClock) Now() time.Time { return f.now }

func (f *fastClock) After(d time.Duration) <-chan time.Time {
	f.now = f.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- f.now
	return ch
}

func newService(t *testing.T, gateway verification.Gateway) (*compliance.Service, *mocks.MockLedgerGateway) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ledgerMock := mocks.NewMockLedgerGateway(ctrl)

	flows := compliance.NewFlowRegistry(gateway, verification.Config{
		PollInterval: time.Second,
		Ceiling:      time.Minute,
		Clock:        &fastClock{now: time.Now()},
	}, nil, nil)

	return compliance.NewService(ledgerMock, flows, nil, nil), ledgerMock
}

func ok() ledger.SubmitResult {
	return ledger.SubmitResult{ResultCode: ledger.SuccessCode, TxHash: "HASH"}
}

func TestIssueCredential(t *testing.T) {
	svc, ledgerMock := newService(t, nil)

	ledgerMock.EXPECT().
		Submit(gomock.Any(), gomock.AssignableToTypeOf(&txbuilder.CredentialCreate{})).
		Return(ok(), nil)

	res, err := svc.IssueCredential(context.Background(), compliance.IssueCredentialRequest{
		Issuer:  issuer,
		Subject: alice,
		Type:    "KYC",
	})
	require.NoError(t, err)
	assert.Equal(t, "HASH", res.TxHash)
}

func TestIssueCredentialSelfRejected(t *testing.T) {
	svc, _ := newService(t, nil)

	_, err := svc.IssueCredential(context.Background(), compliance.IssueCredentialRequest{
		Issuer:  issuer,
		Subject: issuer,
		Type:    "KYC",
	})
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
}

func TestSetupIssuerSubmitsEveryPayload(t *testing.T) {
	svc, ledgerMock := newService(t, nil)

	// Bitmask payload plus freeze and rippling named payloads.
	ledgerMock.EXPECT().
		Submit(gomock.Any(), gomock.AssignableToTypeOf(&txbuilder.AccountSet{})).
		Return(ok(), nil).
		Times(3)

	results, err := svc.SetupIssuer(context.Background(), issuer, txbuilder.IssuerFlags{
		RequireAuth: true,
		Freeze:      true,
	})
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSetupIssuerStopsOnFirstRejection(t *testing.T) {
	svc, ledgerMock := newService(t, nil)

	gomock.InOrder(
		ledgerMock.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(ok(), nil),
		ledgerMock.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(ledger.SubmitResult{ResultCode: "tecOWNERS"},
				dErrors.New(dErrors.CodeGateway, "the ledger rejected the transaction (tecOWNERS)")),
	)

	results, err := svc.SetupIssuer(context.Background(), issuer, txbuilder.IssuerFlags{
		RequireAuth: true,
		Freeze:      true,
	})
	require.Error(t, err)
	assert.Len(t, results, 2, "sequence stops at the first rejection")
}

func TestVerificationFlowIssuesCredentialOnSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifierMock := vmocks.NewMockGateway(ctrl)

	verifierMock.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		Return(verification.CreatedSession{ID: "sess-1", Challenge: "openid4vp://x"}, nil)
	verifierMock.EXPECT().
		GetSession(gomock.Any(), "sess-1").
		Return(verification.SessionState{
			Status: verification.GatewaySucceeded,
			Claims: map[string]any{"age_over_18": true},
		}, nil)

	svc, ledgerMock := newService(t, verifierMock)
	ledgerMock.EXPECT().
		Submit(gomock.Any(), gomock.AssignableToTypeOf(&txbuilder.CredentialCreate{})).
		Return(ok(), nil)

	started, err := svc.StartVerification(context.Background(), compliance.StartVerificationRequest{
		Issuer:    issuer,
		Subject:   alice,
		Type:      "KYC",
		Requested: verification.RequestedAttributes{"ageOver18": {BoolPresence: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, "sess-1", started.SessionID)
	assert.NotEmpty(t, started.Challenge)

	require.Eventually(t, func() bool {
		view, err := svc.VerificationStatus(started.SessionID)
		if err != nil {
			return false
		}
		return view.Outcome != nil && view.Outcome.Status == verification.StatusSucceeded && view.TxHash == "HASH"
	}, 2*time.Second, 10*time.Millisecond)

	// Terminal outcome was consumed; the flow is discarded.
	_, err = svc.VerificationStatus(started.SessionID)
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
}

func TestVerificationFlowPolicyMismatchNeverIssues(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifierMock := vmocks.NewMockGateway(ctrl)

	verifierMock.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		Return(verification.CreatedSession{ID: "sess-2", Challenge: "openid4vp://x"}, nil)
	verifierMock.EXPECT().
		GetSession(gomock.Any(), "sess-2").
		Return(verification.SessionState{
			Status: verification.GatewaySucceeded,
			Claims: map[string]any{"age_over_18": "false"},
		}, nil)

	// No ledger Submit expectation: a mismatch must never issue.
	svc, _ := newService(t, verifierMock)

	started, err := svc.StartVerification(context.Background(), compliance.StartVerificationRequest{
		Issuer:    issuer,
		Subject:   alice,
		Type:      "KYC",
		Requested: verification.RequestedAttributes{"ageOver18": {BoolPresence: true}},
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		view, err := svc.VerificationStatus(started.SessionID)
		if err != nil {
			return false
		}
		return view.Outcome != nil && view.Outcome.Status == verification.StatusFailed
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCancelVerification(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifierMock := vmocks.NewMockGateway(ctrl)

	verifierMock.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		Return(verification.CreatedSession{ID: "sess-3", Challenge: "c"}, nil)
	verifierMock.EXPECT().
		GetSession(gomock.Any(), "sess-3").
		Return(verification.SessionState{Status: verification.GatewayPending}, nil).
		AnyTimes()

	svc, _ := newService(t, verifierMock)

	started, err := svc.StartVerification(context.Background(), compliance.StartVerificationRequest{
		Issuer:    issuer,
		Subject:   alice,
		Type:      "KYC",
		Requested: verification.RequestedAttributes{"ageOver18": {BoolPresence: true}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.CancelVerification(started.SessionID))

	require.Eventually(t, func() bool {
		view, err := svc.VerificationStatus(started.SessionID)
		if err != nil {
			return false
		}
		return view.Outcome != nil && view.Outcome.Status == verification.StatusCancelled
	}, 2*time.Second, 10*time.Millisecond)
}
