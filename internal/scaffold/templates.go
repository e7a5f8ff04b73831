package scaffold

import "fmt"

func mainJava(basePackage string) string {
	return fmt.Sprintf(`package %s;

public class Main {
    public static void main(String[] args) {
        System.out.println("Hello, World!");
    }
}
`, basePackage)
}

func mainTestJava(basePackage string) string {
	return fmt.Sprintf(`package %s;

import org.junit.jupiter.api.Test;
import static org.junit.jupiter.api.Assertions.*;

class MainTest {
    @Test
    void testMain() {
        assertTrue(true);
    }
}
`, basePackage)
}

func libJava(basePackage, name string) string {
	return fmt.Sprintf(`package %s;

public class Lib {
    public static String greeting() {
        return "Hello from %s!";
    }
}
`, basePackage, name)
}

func libTestJava(basePackage, name string) string {
	return fmt.Sprintf(`package %s;

import org.junit.jupiter.api.Test;
import static org.junit.jupiter.api.Assertions.*;

class LibTest {
    @Test
    void testGreeting() {
        assertEquals("Hello from %s!", Lib.greeting());
    }
}
`, basePackage, name)
}
