package services

import (
	"pwreset/internal/app/deps"
	"pwreset/internal/core/services"
	createuser "pwreset/internal/core/services/create_user"
	resetpassword "pwreset/internal/core/services/reset_password"
	sendpasswordresettoken "pwreset/internal/core/services/send_password_reset_token"
	"pwreset/internal/core/services/timeout"
	verifypasswordresettoken "pwreset/internal/core/services/verify_password_reset_token"
)

type Services struct {
	SendPasswordResetToken   services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	VerifyPasswordResetToken services.Service[verifypasswordresettoken.Input, verifypasswordresettoken.Result]
	ResetPassword            services.Service[resetpassword.Input, resetpassword.Result]
	CreateUser               services.Service[createuser.Input, createuser.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}
	operationTimeout := deps.Config.OperationTimeout

	s.SendPasswordResetToken = timeout.WithTimeout(
		operationTimeout,
		sendpasswordresettoken.NewWithTokenSending(
			deps.Logger,
			deps.PasswordResetTokenSender,
			sendpasswordresettoken.New(
				deps.Logger,
				deps.UnitOfWork,
				deps.PasswordResetter,
			),
		),
	)
	s.VerifyPasswordResetToken = timeout.WithTimeout(
		operationTimeout,
		verifypasswordresettoken.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordResetter,
		),
	)
	s.ResetPassword = timeout.WithTimeout(
		operationTimeout,
		resetpassword.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.PasswordResetter,
			deps.PasswordHasher,
		),
	)
	s.CreateUser = timeout.WithTimeout(
		operationTimeout,
		createuser.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.PasswordHasher,
			deps.Now,
		),
	)

	return s
}
