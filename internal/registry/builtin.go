package registry

import "bytemomo/dredge/internal/domain"

// Builtin returns a registry preloaded with the built-in catalog. The
// rules cover the audit areas of the quantum certificate platform this
// scanner grew out of: cryptography, certificate management, consensus
// validation, API security, configuration and production readiness.
func Builtin() (*Registry, error) {
	r := NewRegistry()
	for _, rule := range builtinRules() {
		if err := r.Register(rule); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func builtinRules() []*domain.Rule {
	return []*domain.Rule{
		// Cryptography
		{
			ID:          "crypto-dummy-signature",
			Category:    domain.CategoryCryptography,
			Severity:    domain.SeverityCritical,
			Title:       "Dummy cryptographic signature",
			Description: "Signature routine returns a fixed zero buffer instead of a computed signature",
			Pattern:     `Ok\(vec!\[0u8; 64\]\)`,
			Impact:      "Complete cryptographic security bypass - signatures can be forged",
			Remediation: "Replace the stub with a real signature computation",
		},
		{
			ID:          "crypto-mock-material",
			Category:    domain.CategoryCryptography,
			Severity:    domain.SeverityCritical,
			Title:       "Mock cryptographic implementation",
			Description: "Mock, fake or dummy crypto primitives referenced in non-test code",
			Pattern:     `(mock|fake|dummy)\w*(crypto|falcon|signature|keypair)`,
			Impact:      "Cryptographic guarantees silently absent",
			Remediation: "Integrate a real cryptographic library (pqcrypto-falcon, ring, rustls)",
		},
		{
			ID:          "crypto-simulated-validation",
			Category:    domain.CategoryCryptography,
			Severity:    domain.SeverityCritical,
			Title:       "Simulated signature validation",
			Description: "FALCON-1024 validation is simulated rather than computed",
			Pattern:     `simulate_falcon_validation`,
			Impact:      "Complete digital signature security failure",
			Remediation: "Integrate the pq-crystals FALCON-1024 library",
		},
		{
			ID:          "crypto-weak-algorithm",
			Category:    domain.CategoryCryptography,
			Severity:    domain.SeverityHigh,
			Title:       "Weak cryptographic algorithm",
			Description: "Reference to MD5, SHA-1, DES, RC4 or RSA-1024",
			Pattern:     `\b(MD5|SHA-?1|3?DES|RC4|RSA-1024)\b`,
			Impact:      "Broken or deprecated primitives undermine confidentiality and integrity",
			Remediation: "Use SHA-256 or better, AES-GCM, and RSA-3072/ECDSA minimum",
		},
		{
			ID:           "crypto-insecure-random",
			Category:     domain.CategoryCryptography,
			Severity:     domain.SeverityHigh,
			Title:        "Non-cryptographic randomness in security context",
			Description:  "rand::random used in a file that handles keys, nonces or salts",
			Pattern:      `rand::random`,
			FileGlob:     "*.rs",
			FileContains: `crypto|key|nonce|salt`,
			Impact:       "Predictable random values compromise key and nonce generation",
			Remediation:  "Use a CSPRNG (rand::rngs::OsRng or ring::rand)",
		},

		// Certificate management
		{
			ID:          "cert-mock-material",
			Category:    domain.CategoryCertificateMgmt,
			Severity:    domain.SeverityCritical,
			Title:       "Mock cryptographic material in certificate generation",
			Description: "Certificates generated with mock keys or signatures",
			Pattern:     `mock_(public_key|signature|certificate)`,
			Impact:      "All issued certificates invalid - complete PKI security failure",
			Remediation: "Implement real key generation and signing in the issuance path",
		},
		{
			ID:          "cert-permissive-validation",
			Category:    domain.CategoryCertificateMgmt,
			Severity:    domain.SeverityHigh,
			Title:       "Permissive certificate validation mode",
			Description: "A development-only permissive validation mode is selectable",
			Pattern:     `certificate_validation['":\s]+['"]?permissive`,
			Impact:      "Invalid certificates may be accepted in production",
			Remediation: "Remove the permissive mode and enforce strict validation",
		},
		{
			ID:          "cert-transparency-stub",
			Category:    domain.CategoryCertificateMgmt,
			Severity:    domain.SeverityCritical,
			Title:       "Certificate transparency storage not implemented",
			Description: "Transparency log storage is a placeholder",
			Pattern:     `Placeholder for S3`,
			Impact:      "No audit trail for issuance - malicious certificates undetectable",
			Remediation: "Implement durable, encrypted storage for transparency log entries",
		},

		// Consensus validation
		{
			ID:          "consensus-auto-approve",
			Category:    domain.CategoryConsensusValidation,
			Severity:    domain.SeverityCritical,
			Title:       "Automatic consensus approval",
			Description: "Every consensus validation request is approved unconditionally",
			Pattern:     `Ok\(ConsensusResult::Valid\)`,
			Impact:      "Byzantine fault tolerance bypassed - unlimited certificate issuance",
			Remediation: "Implement the full four-proof validation (PoSpace+PoStake+PoWork+PoTime)",
		},
		{
			ID:          "consensus-test-bypass",
			Category:    domain.CategoryConsensusValidation,
			Severity:    domain.SeverityHigh,
			Title:       "Test consensus proofs in production code",
			Description: "default_for_testing() constructors reachable outside tests",
			Pattern:     `default_for_testing\(\)`,
			Impact:      "Consensus checks can be satisfied with canned test proofs",
			Remediation: "Remove default_for_testing() from production code paths",
		},

		// API security
		{
			ID:          "api-unauthenticated-call",
			Category:    domain.CategoryAPISecurity,
			Severity:    domain.SeverityHigh,
			Title:       "API call without authentication header",
			Description: "fetch() in a frontend module that never sets an Authorization header",
			Pattern:     `fetch\(`,
			FileGlob:    "*.ts*",
			FileLacks:   `Authorization`,
			Impact:      "Unauthorized access to certificate and security APIs",
			Remediation: "Attach JWT or API-key authentication to every API request",
		},
		{
			ID:          "api-xss-sink",
			Category:    domain.CategoryAPISecurity,
			Severity:    domain.SeverityHigh,
			Title:       "Potential XSS sink",
			Description: "dangerouslySetInnerHTML used without evident sanitization",
			Pattern:     `dangerouslySetInnerHTML`,
			Impact:      "Cross-site scripting against the security configuration UI",
			Remediation: "Remove the raw HTML sink or sanitize with DOMPurify",
		},
		{
			ID:          "api-command-injection",
			Category:    domain.CategoryAPISecurity,
			Severity:    domain.SeverityCritical,
			Title:       "Potential command injection",
			Description: "Process spawned from a formatted or concatenated string",
			Pattern:     `Command::new.*(format!|\+)`,
			FileGlob:    "*.rs",
			Impact:      "Attacker-controlled input may reach a shell command",
			Remediation: "Pass arguments individually and never interpolate user input",
		},

		// Configuration
		{
			ID:          "config-hardcoded-secret",
			Category:    domain.CategoryConfiguration,
			Severity:    domain.SeverityCritical,
			Title:       "Hardcoded secret",
			Description: "Inline credential assignment detected",
			Pattern:     `(private_key|secret|password|api_key)\s*[:=]\s*["'][\w+/=-]{8,}["']`,
			Impact:      "Credential disclosure to anyone with repository access",
			Remediation: "Move secrets to environment variables or a key management service",
		},
		{
			ID:          "config-path-traversal",
			Category:    domain.CategoryConfiguration,
			Severity:    domain.SeverityHigh,
			Title:       "Potential path traversal",
			Description: "Relative parent-directory segment in a path expression",
			Pattern:     `\.\./|\.\.\\`,
			Impact:      "File access outside the intended directory tree",
			Remediation: "Canonicalize and validate paths before use",
		},
		{
			ID:          "config-unsafe-deserialization",
			Category:    domain.CategoryConfiguration,
			Severity:    domain.SeverityMedium,
			Title:       "Unsafe deserialization",
			Description: "bincode::deserialize on data not marked as untrusted",
			Pattern:     `bincode::deserialize`,
			Unless:      `untrusted`,
			FileGlob:    "*.rs",
			Impact:      "Malformed input may reach a permissive decoder",
			Remediation: "Validate and bound inputs before deserialization",
		},

		// Production readiness
		{
			ID:          "prod-placeholder-impl",
			Category:    domain.CategoryProductionReadiness,
			Severity:    domain.SeverityCritical,
			Title:       "Placeholder implementation",
			Description: "todo!() or unimplemented!() in shipped code",
			Pattern:     `(todo!|unimplemented!)\(`,
			FileGlob:    "*.rs",
			Impact:      "Reaching the stub panics the process in production",
			Remediation: "Complete the implementation before deployment",
		},
		{
			ID:          "prod-security-todo",
			Category:    domain.CategoryProductionReadiness,
			Severity:    domain.SeverityCritical,
			Title:       "Unfinished security implementation",
			Description: "TODO/FIXME/HACK marker attached to security-sensitive code",
			Pattern:     `(TODO|FIXME|HACK|XXX).*(security|crypto|auth)`,
			Impact:      "Known-incomplete security control",
			Remediation: "Finish the marked security work before deployment",
		},
		{
			ID:          "prod-unwrap-panic",
			Category:    domain.CategoryProductionReadiness,
			Severity:    domain.SeverityHigh,
			Title:       "Unhandled unwrap",
			Description: ".unwrap() can panic on unexpected input",
			Pattern:     `\.unwrap\(\)`,
			FileGlob:    "*.rs",
			Impact:      "Denial of service through induced panics",
			Remediation: "Propagate errors with Result and the ? operator",
		},
		{
			ID:          "prod-unvalidated-parse",
			Category:    domain.CategoryProductionReadiness,
			Severity:    domain.SeverityHigh,
			Title:       "Parse without error handling",
			Description: ".parse() with neither expect nor error propagation on the line",
			Pattern:     `\.parse\(\)`,
			Unless:      `expect|\?`,
			FileGlob:    "*.rs",
			Impact:      "Malformed external data crashes or is silently mishandled",
			Remediation: "Handle the parse Result explicitly",
		},
		{
			ID:          "prod-debug-output",
			Category:    domain.CategoryProductionReadiness,
			Severity:    domain.SeverityMedium,
			Title:       "Debug output in production code",
			Description: "console.log / println! / debug! left in shipped code",
			Pattern:     `(console\.log|println!|debug!)\(`,
			Impact:      "Information leakage and noisy production logs",
			Remediation: "Route diagnostics through the structured logger",
		},
		{
			ID:          "prod-test-endpoint",
			Category:    domain.CategoryProductionReadiness,
			Severity:    domain.SeverityMedium,
			Title:       "Test endpoint in production code",
			Description: "Hardcoded test host, loopback address or test CA name",
			Pattern:     `test\.example\.com|127\.0\.0\.1|\btest-ca\b|\btest-log\b`,
			Impact:      "Production traffic may be directed at test infrastructure",
			Remediation: "Make endpoints configurable per environment",
		},
	}
}
