// Package log provides secure logging built on top of the standard slog package.
//
// The SecureHandler sanitizes log output before it reaches the terminal or
// the log file:
//   - Attributes named like credentials (password, cookie, token) are masked
//   - Connection strings keep their host and database but lose the password
//   - Error values are checked for embedded connection strings
//
// # Usage
//
//	logger, closeLog, err := log.Setup(os.Stderr, log.Options{
//	    Verbose: true,
//	    File:    "/var/log/scrapetab.log", // optional, size rotated
//	})
//	if err != nil {
//	    return err
//	}
//	defer closeLog()
//
//	logger.Info("connecting", "dsn", "rfamro:@tcp(mysql-rfam-public.ebi.ac.uk:4497)/Rfam")
package log
